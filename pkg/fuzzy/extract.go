package fuzzy

import (
	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/extract"
	corefuzzy "github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/baditaflorin/l"
)

// Extractor ranks choices against a query.
type Extractor = extract.Extractor

// ExtractorOption defines a functional option for configuring an Extractor.
type ExtractorOption func(*extractorConfig)

type extractorConfig struct {
	Config    extract.Config
	Logger    ports.Logger
	Direction *bool
}

// WithWorkers bounds the number of scoring goroutines.
func WithWorkers(n int) ExtractorOption {
	return func(cfg *extractorConfig) {
		cfg.Config.Workers = n
	}
}

// WithCutoff drops matches worse than cutoff.
func WithCutoff(cutoff int) ExtractorOption {
	return func(cfg *extractorConfig) {
		cfg.Config.Cutoff = cutoff
		cfg.Config.HasCutoff = true
	}
}

// WithHigherIsBetter overrides the score direction, which is otherwise derived from the
// algorithm's built-in scorer (similarities rank high first, distances low first).
func WithHigherIsBetter(higher bool) ExtractorOption {
	return func(cfg *extractorConfig) {
		cfg.Direction = &higher
	}
}

// WithExtractorLogger sets a custom logger for the extractor.
func WithExtractorLogger(log l.Logger) ExtractorOption {
	return func(cfg *extractorConfig) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// NewExtractor creates an Extractor that scores with algo.
func NewExtractor(algo *Algorithm, opts ...ExtractorOption) (*Extractor, error) {
	cfg := &extractorConfig{Config: extract.DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Direction != nil {
		cfg.Config.HigherIsBetter = *cfg.Direction
	} else if algo != nil {
		cfg.Config.HigherIsBetter = corefuzzy.HigherIsBetter(corefuzzy.NameOf(algo.Scorer()))
	}

	return extract.New(algo, cfg.Config, cfg.Logger)
}
