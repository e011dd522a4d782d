package preprocess

import (
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

type trim struct{}

func (trim) Preprocess(text string) string { return strings.TrimSpace(text) }

func (trim) String() string { return NameTrim }

type lower struct{}

func (lower) Preprocess(text string) string { return strings.ToLower(text) }

func (lower) String() string { return NameLower }

var (
	// Trim removes leading and trailing white space.
	Trim ports.Preprocessor = trim{}

	// Lower lower-cases the input.
	Lower ports.Preprocessor = lower{}
)
