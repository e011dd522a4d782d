package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// Preprocessor names understood by ByName.
const (
	NameNone    = "none"
	NameDefault = "default"
	NameTrim    = "trim"
	NameLower   = "lower"
	NameFold    = "fold"
	NameStem    = "stem"
)

// MaxChainStages is the longest '+' chain ByName accepts.
const MaxChainStages = 8

var (
	// ErrUnknownPreprocessor is returned for names ByName does not know.
	ErrUnknownPreprocessor = errors.New("unknown preprocessor")
	// ErrChainTooLong is returned for chains of more than MaxChainStages names.
	ErrChainTooLong = errors.New("preprocessor chain too long")
)

// Options tunes the preprocessors built by ByName.
type Options struct {
	// Language selects the stemming language for "stem".
	Language string
	// Cache wraps the result in a Cached preprocessor.
	Cache bool
}

// Names lists the preprocessor names in a stable order.
func Names() []string {
	return []string{NameNone, NameDefault, NameTrim, NameLower, NameFold, NameStem}
}

// ByName builds a preprocessor from its name. Several names joined with '+'
// ("fold+default") build a Chain applied left to right. An empty name means "default".
func ByName(name string, opts Options) (ports.Preprocessor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = NameDefault
	}

	var p ports.Preprocessor
	if strings.Contains(name, "+") {
		parts := strings.Split(name, "+")
		if len(parts) > MaxChainStages {
			return nil, fmt.Errorf("%w: %d stages > %d", ErrChainTooLong, len(parts), MaxChainStages)
		}
		stages := make([]ports.Preprocessor, 0, len(parts))
		for _, part := range parts {
			stage, err := single(strings.TrimSpace(part), opts)
			if err != nil {
				return nil, err
			}
			stages = append(stages, stage)
		}
		p = Chain(stages...)
	} else {
		var err error
		if p, err = single(name, opts); err != nil {
			return nil, err
		}
	}

	// NoOp has nothing worth caching.
	if opts.Cache && p != NoOp {
		p = NewCached(p, DefaultCacheShards)
	}
	return p, nil
}

func single(name string, opts Options) (ports.Preprocessor, error) {
	switch name {
	case NameNone:
		return NoOp, nil
	case NameDefault:
		return Default, nil
	case NameTrim:
		return Trim, nil
	case NameLower:
		return Lower, nil
	case NameFold:
		return FoldAccents, nil
	case NameStem:
		s, err := NewStem(opts.Language)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreprocessor, name)
	}
}

// Describe returns a short human readable name for p.
func Describe(p ports.Preprocessor) string {
	if p == nil {
		return NameNone
	}
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}
