package preprocess

import "github.com/baditaflorin/go_fuzzy_compare/internal/ports"

type noOp struct{}

func (noOp) Preprocess(text string) string { return text }

func (noOp) String() string { return NameNone }

// NoOp returns its input unchanged.
var NoOp ports.Preprocessor = noOp{}
