package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 200,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// Comparer is anything that scores two strings with its own configured preprocessing.
type Comparer interface {
	Compare(s1, s2 string) int
}

// Manager handles system warmup operations
type Manager struct {
	logger        ports.Logger
	comparers     []Comparer
	preprocessors []ports.Preprocessor
	config        WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterComparer adds an algorithm to be warmed up
func (wm *Manager) RegisterComparer(c Comparer) {
	wm.comparers = append(wm.comparers, c)
}

// RegisterPreprocessor adds a preprocessor to be warmed up
func (wm *Manager) RegisterPreprocessor(p ports.Preprocessor) {
	wm.preprocessors = append(wm.preprocessors, p)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.comparers)+len(wm.preprocessors),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpPreprocessors(warmupCtx)
	wm.warmUpComparers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) warmUpPreprocessors(ctx context.Context) {
	if len(wm.preprocessors) == 0 {
		return
	}

	wm.logger.Debug("Warming up preprocessors", "count", len(wm.preprocessors))

	sampleText := generateSampleText(wm.config.SampleTextSize)
	wm.run(ctx, func(int) {
		for _, p := range wm.preprocessors {
			_ = p.Preprocess(sampleText)
		}
	})
}

func (wm *Manager) warmUpComparers(ctx context.Context) {
	if len(wm.comparers) == 0 {
		return
	}

	wm.logger.Debug("Warming up comparers", "count", len(wm.comparers))

	original := generateSampleText(wm.config.SampleTextSize)
	similar := generateSimilarText(original, 0.1)
	different := generateSimilarText(original, 0.5)

	wm.run(ctx, func(j int) {
		for _, c := range wm.comparers {
			switch j % 3 {
			case 0:
				_ = c.Compare(original, original)
			case 1:
				_ = c.Compare(original, similar)
			default:
				_ = c.Compare(original, different)
			}
		}
	})
}

// run calls work Iterations times on each of Concurrency goroutines, stopping early once ctx is done.
func (wm *Manager) run(ctx context.Context, work func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				work(j)
			}
		}()
	}
	wg.Wait()
}

// generateSampleText creates sample text of roughly the specified size
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	wordsNeeded := size / 5 // Assuming average word length of 5

	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// generateSimilarText replaces the leading diffRatio share of words in original
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)
	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}

	return strings.Join(newWords, " ")
}
