// Package extract ranks a slice of choices against a query with an Algorithm.
//
// Extraction is a linear scan over the choices the caller passes in; nothing is indexed or
// retained between calls.
package extract

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/algorithm"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the number of choices below which scoring stays on the calling goroutine.
const parallelThreshold = 64

// ErrNilAlgorithm is returned by New when no algorithm is given.
var ErrNilAlgorithm = errors.New("extract: algorithm is nil")

// Config tunes an Extractor.
type Config struct {
	// HigherIsBetter orders matches by descending score when true, ascending when false.
	HigherIsBetter bool
	// Workers bounds the scoring goroutines. Zero means GOMAXPROCS.
	Workers int
	// Cutoff drops matches worse than this score when HasCutoff is set.
	Cutoff    int
	HasCutoff bool
}

// DefaultConfig returns a configuration for similarity scorers.
func DefaultConfig() Config {
	return Config{
		HigherIsBetter: true,
		Workers:        runtime.GOMAXPROCS(0),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// Extractor scores choices against a query.
type Extractor struct {
	algo   *algorithm.Algorithm
	config Config
	logger ports.Logger
}

// New creates an Extractor. A nil logger is replaced by a silent one.
func New(algo *algorithm.Algorithm, config Config, log ports.Logger) (*Extractor, error) {
	if algo == nil {
		return nil, ErrNilAlgorithm
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{algo: algo, config: config, logger: log}, nil
}

// All scores every choice and returns the matches in input order, cutoff applied.
func (e *Extractor) All(ctx context.Context, query string, choices []string) ([]domain.Match, error) {
	// One snapshot for the whole call so a concurrent reconfiguration cannot
	// split a single extraction across two preprocessors.
	p := e.algo.Preprocessor()

	scores := make([]int, len(choices))
	if err := e.score(ctx, query, choices, p, scores); err != nil {
		e.logger.Error("Extraction cancelled", "error", err)
		return nil, err
	}

	matches := make([]domain.Match, 0, len(choices))
	for i, choice := range choices {
		if !e.passes(scores[i]) {
			continue
		}
		matches = append(matches, domain.Match{Choice: choice, Index: i, Score: scores[i]})
	}

	e.logger.Debug("Extracted matches",
		"query", query,
		"choices", len(choices),
		"matches", len(matches),
	)
	return matches, nil
}

// Sorted returns all passing matches, best first. Ties keep input order.
func (e *Extractor) Sorted(ctx context.Context, query string, choices []string) ([]domain.Match, error) {
	matches, err := e.All(ctx, query, choices)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return e.better(matches[i].Score, matches[j].Score)
	})
	return matches, nil
}

// Top returns at most limit matches, best first. A limit <= 0 returns all of them.
func (e *Extractor) Top(ctx context.Context, query string, choices []string, limit int) ([]domain.Match, error) {
	matches, err := e.Sorted(ctx, query, choices)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// One returns the best match. The boolean is false when no choice passes the cutoff.
func (e *Extractor) One(ctx context.Context, query string, choices []string) (domain.Match, bool, error) {
	matches, err := e.Top(ctx, query, choices, 1)
	if err != nil {
		return domain.Match{}, false, err
	}
	if len(matches) == 0 {
		return domain.Match{}, false, nil
	}
	return matches[0], true, nil
}

func (e *Extractor) score(ctx context.Context, query string, choices []string, p ports.Preprocessor, out []int) error {
	if len(choices) < parallelThreshold || e.config.Workers == 1 {
		for i, choice := range choices {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = e.algo.CompareWith(query, choice, p)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	chunk := (len(choices) + e.config.Workers - 1) / e.config.Workers
	for start := 0; start < len(choices); start += chunk {
		end := min(start+chunk, len(choices))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = e.algo.CompareWith(query, choices[i], p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (e *Extractor) passes(score int) bool {
	if !e.config.HasCutoff {
		return true
	}
	if e.config.HigherIsBetter {
		return score >= e.config.Cutoff
	}
	return score <= e.config.Cutoff
}

func (e *Extractor) better(a, b int) bool {
	if e.config.HigherIsBetter {
		return a > b
	}
	return a < b
}
