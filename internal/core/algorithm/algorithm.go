// Package algorithm pairs a comparison algorithm with its current preprocessing strategy.
package algorithm

import (
	"sync"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// Algorithm wraps a ports.Scorer and always holds exactly one preprocessor.
//
// Compare uses the configured preprocessor; CompareWith takes it as an argument and never
// touches the configured one. The configured preprocessor is guarded by a RWMutex, so an
// Algorithm may be shared between goroutines.
type Algorithm struct {
	scorer ports.Scorer

	mu           sync.RWMutex
	preprocessor ports.Preprocessor
	logger       ports.Logger
}

// New creates an Algorithm that uses preprocess.Default. scorer must not be nil.
func New(scorer ports.Scorer) *Algorithm {
	return NewWithPreprocessor(scorer, preprocess.Default)
}

// NewWithPreprocessor creates an Algorithm that uses p. A nil p means no preprocessing.
func NewWithPreprocessor(scorer ports.Scorer, p ports.Preprocessor) *Algorithm {
	return &Algorithm{
		scorer:       scorer,
		preprocessor: orNoOp(p),
		logger:       logger.Nop(),
	}
}

func orNoOp(p ports.Preprocessor) ports.Preprocessor {
	if p == nil {
		return preprocess.NoOp
	}
	return p
}

// Compare scores s1 against s2 with the configured preprocessor.
// It is CompareWith(s1, s2, a.Preprocessor()).
func (a *Algorithm) Compare(s1, s2 string) int {
	a.mu.RLock()
	p := a.preprocessor
	a.mu.RUnlock()

	return a.CompareWith(s1, s2, p)
}

// CompareWith scores s1 against s2 with p, ignoring the configured preprocessor.
// Panics from the scorer or from p reach the caller unchanged.
func (a *Algorithm) CompareWith(s1, s2 string, p ports.Preprocessor) int {
	score := a.scorer.Score(s1, s2, orNoOp(p))

	a.mu.RLock()
	log := a.logger
	a.mu.RUnlock()
	log.Debug("Compared strings",
		"s1", s1,
		"s2", s2,
		"preprocessor", preprocess.Describe(p),
		"score", score,
	)

	return score
}

// WithPreprocessor replaces the configured preprocessor and returns a.
// A nil p means no preprocessing.
func (a *Algorithm) WithPreprocessor(p ports.Preprocessor) *Algorithm {
	p = orNoOp(p)

	a.mu.Lock()
	a.preprocessor = p
	log := a.logger
	a.mu.Unlock()

	log.Debug("Preprocessor configured", "preprocessor", preprocess.Describe(p))
	return a
}

// WithNoPreprocessing is WithPreprocessor(preprocess.NoOp).
func (a *Algorithm) WithNoPreprocessing() *Algorithm {
	return a.WithPreprocessor(preprocess.NoOp)
}

// WithLogger sets the logger used for debug tracing and returns a.
func (a *Algorithm) WithLogger(log ports.Logger) *Algorithm {
	if log == nil {
		log = logger.Nop()
	}
	a.mu.Lock()
	a.logger = log
	a.mu.Unlock()
	return a
}

// Preprocessor returns the configured preprocessor.
func (a *Algorithm) Preprocessor() ports.Preprocessor {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.preprocessor
}

// Scorer returns the wrapped scorer.
func (a *Algorithm) Scorer() ports.Scorer {
	return a.scorer
}
