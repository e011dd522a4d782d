// Package fuzzy is the public entry point for pluggable string comparison.
//
// An Algorithm pairs a Scorer with one current Preprocessor:
//
//	algo, _ := fuzzy.NewWeightedRatio()
//	algo.Compare("New York Mets", "new york mets!") // 100, Default strips case and punctuation
//	algo.WithNoPreprocessing().Compare("New York Mets", "new york mets!")
//	algo.CompareWith("Crème", "creme", fuzzy.FoldAccents)
//
// Default lower-cases, turns every rune that is not a letter, digit, mark or '_' into a
// separator, collapses separator runs to one space and trims both ends.
package fuzzy

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/algorithm"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
	corefuzzy "github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/baditaflorin/go_fuzzy_compare/internal/warmup"
	"github.com/baditaflorin/l"
)

type (
	// Preprocessor transforms a string before comparison.
	Preprocessor = ports.Preprocessor
	// PreprocessorFunc adapts a function to Preprocessor.
	PreprocessorFunc = ports.PreprocessorFunc
	// Scorer compares two strings after preprocessing them.
	Scorer = ports.Scorer
	// Algorithm pairs a Scorer with its current Preprocessor.
	Algorithm = algorithm.Algorithm
	// Match is one scored choice returned by an Extractor.
	Match = domain.Match
	// WarmUpConfig tunes the optional warm-up run.
	WarmUpConfig = warmup.WarmupConfig
)

// DefaultWarmUpConfig returns the warm-up configuration used by WithWarmUp.
func DefaultWarmUpConfig() WarmUpConfig {
	return warmup.DefaultWarmupConfig()
}

// Built-in preprocessors.
var (
	NoOp        = preprocess.NoOp
	Default     = preprocess.Default
	Trim        = preprocess.Trim
	Lower       = preprocess.Lower
	FoldAccents = preprocess.FoldAccents
)

// Errors returned by the constructors.
var (
	ErrNilScorer           = errors.New("fuzzy: scorer is nil")
	ErrUnknownScorer       = corefuzzy.ErrUnknownScorer
	ErrUnknownPreprocessor = preprocess.ErrUnknownPreprocessor
)

// Stem returns a preprocessor that stems every token for language ("" means English).
func Stem(language string) (Preprocessor, error) {
	s, err := preprocess.NewStem(language)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Chain composes preprocessors left to right.
func Chain(stages ...Preprocessor) Preprocessor {
	return preprocess.Chain(stages...)
}

// Cached memoizes p across calls.
func Cached(p Preprocessor) Preprocessor {
	return preprocess.NewCached(p, preprocess.DefaultCacheShards)
}

// PreprocessorByName builds a preprocessor from a name such as "default", "none" or "fold+stem".
func PreprocessorByName(name, language string) (Preprocessor, error) {
	return preprocess.ByName(name, preprocess.Options{Language: language})
}

// PreprocessorNames lists the names PreprocessorByName accepts.
func PreprocessorNames() []string {
	return preprocess.Names()
}

// ScorerNames lists the names NewByName accepts.
func ScorerNames() []string {
	return corefuzzy.Names()
}

// Option defines a functional option for configuring an Algorithm.
type Option func(*config)

type config struct {
	Preprocessor    Preprocessor
	PreprocessorSet bool
	Logger          ports.Logger
	WarmUp          bool
	WarmUpConfig    WarmUpConfig
}

// WithPreprocessor sets the initial preprocessor. A nil p disables preprocessing.
func WithPreprocessor(p Preprocessor) Option {
	return func(cfg *config) {
		cfg.Preprocessor = p
		cfg.PreprocessorSet = true
	}
}

// WithNoPreprocessing starts the algorithm with NoOp.
func WithNoPreprocessing() Option {
	return WithPreprocessor(NoOp)
}

// WithLogger sets a custom logger for debug tracing.
func WithLogger(log l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// WithWarmUp enables a short warm-up on construction.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc WarmUpConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates an Algorithm around scorer. Without options it uses Default and no logging.
func New(scorer Scorer, opts ...Option) (*Algorithm, error) {
	if scorer == nil {
		return nil, ErrNilScorer
	}

	cfg := &config{
		Logger:       logger.Nop(),
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var algo *Algorithm
	if cfg.PreprocessorSet {
		algo = algorithm.NewWithPreprocessor(scorer, cfg.Preprocessor)
	} else {
		algo = algorithm.New(scorer)
	}
	algo.WithLogger(cfg.Logger)

	if cfg.WarmUp {
		mgr := warmup.NewManager(cfg.Logger, cfg.WarmUpConfig)
		mgr.RegisterPreprocessor(algo.Preprocessor())
		mgr.RegisterComparer(algo)
		mgr.WarmUp(context.Background())
	}

	return algo, nil
}

// NewByName creates an Algorithm around the named built-in scorer.
func NewByName(name string, opts ...Option) (*Algorithm, error) {
	scorer, err := corefuzzy.ByName(name)
	if err != nil {
		return nil, err
	}
	return New(scorer, opts...)
}

// NewRatio scores LCS similarity in [0, 100].
func NewRatio(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.Ratio{}, opts...)
}

// NewPartialRatio scores best substring alignment in [0, 100].
func NewPartialRatio(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.PartialRatio{}, opts...)
}

// NewTokenSortRatio scores word-order-insensitive similarity in [0, 100].
func NewTokenSortRatio(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.TokenSortRatio{}, opts...)
}

// NewTokenSetRatio scores token-set similarity in [0, 100].
func NewTokenSetRatio(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.TokenSetRatio{}, opts...)
}

// NewWeightedRatio picks the best weighted ratio in [0, 100].
func NewWeightedRatio(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.WeightedRatio{}, opts...)
}

// NewLevenshtein returns the edit distance.
func NewLevenshtein(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.Levenshtein{}, opts...)
}

// NewJaroWinkler scores Jaro-Winkler similarity in [0, 100].
func NewJaroWinkler(opts ...Option) (*Algorithm, error) {
	return New(corefuzzy.JaroWinkler{}, opts...)
}
