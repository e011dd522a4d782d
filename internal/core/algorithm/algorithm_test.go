package algorithm

import (
	"strings"
	"sync"
	"testing"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyScorer records the preprocessor it was handed and scores by rune length difference.
type spyScorer struct {
	mu   sync.Mutex
	last ports.Preprocessor
}

func (s *spyScorer) Score(s1, s2 string, p ports.Preprocessor) int {
	s.mu.Lock()
	s.last = p
	s.mu.Unlock()
	return fuzzy.Lengths{}.Score(s1, s2, p)
}

type upper struct{}

func (upper) Preprocess(text string) string { return strings.ToUpper(text) }

type dropSpaces struct{}

func (dropSpaces) Preprocess(text string) string { return strings.ReplaceAll(text, " ", "") }

func TestNewUsesDefault(t *testing.T) {
	a := New(fuzzy.Lengths{})
	assert.Equal(t, preprocess.Default, a.Preprocessor())
	assert.Equal(t, fuzzy.Lengths{}, a.Scorer())
}

func TestNewWithPreprocessor(t *testing.T) {
	a := NewWithPreprocessor(fuzzy.Lengths{}, upper{})
	assert.Equal(t, upper{}, a.Preprocessor())

	// "No strategy" is represented by NoOp, never by nil.
	b := NewWithPreprocessor(fuzzy.Lengths{}, nil)
	assert.Equal(t, preprocess.NoOp, b.Preprocessor())
}

func TestLengthsScenario(t *testing.T) {
	assert.Equal(t, 2, New(fuzzy.Lengths{}).Compare("  ab", "abcd"))
	assert.Equal(t, 0, New(fuzzy.Lengths{}).WithNoPreprocessing().Compare("  ab", "abcd"))

	trimmed := NewWithPreprocessor(fuzzy.Lengths{}, preprocess.Trim)
	assert.Equal(t, 2, trimmed.Compare("  ab", "abcd"))
}

func TestCompareMatchesCompareWithConfigured(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"  ab", "abcd"},
		{"Hello, World", "hello world"},
		{"a b c", "abc"},
		{"héllo", "hello!!"},
	}
	strategies := []ports.Preprocessor{
		preprocess.Default, preprocess.NoOp, preprocess.Trim, dropSpaces{}, upper{},
	}
	scorers := []ports.Scorer{fuzzy.Lengths{}, fuzzy.Ratio{}, fuzzy.Levenshtein{}, fuzzy.WeightedRatio{}}

	for _, scorer := range scorers {
		for _, p := range strategies {
			a := NewWithPreprocessor(scorer, p)
			for _, pair := range pairs {
				assert.Equal(t,
					a.CompareWith(pair[0], pair[1], a.Preprocessor()),
					a.Compare(pair[0], pair[1]),
					"%T %T %q", scorer, p, pair,
				)
			}
		}
	}
}

func TestCompareHandsConfiguredPreprocessorToScorer(t *testing.T) {
	spy := &spyScorer{}
	a := NewWithPreprocessor(spy, upper{})

	a.Compare("a", "b")
	assert.Equal(t, upper{}, spy.last)

	a.CompareWith("a", "b", dropSpaces{})
	assert.Equal(t, dropSpaces{}, spy.last)

	// The explicit call leaves the configured preprocessor alone.
	assert.Equal(t, upper{}, a.Preprocessor())

	a.CompareWith("a", "b", nil)
	assert.Equal(t, preprocess.NoOp, spy.last)
}

func TestWithPreprocessorLastWriteWins(t *testing.T) {
	a := New(fuzzy.Lengths{})

	got := a.WithPreprocessor(upper{}).WithPreprocessor(dropSpaces{})
	assert.Same(t, a, got)
	assert.Equal(t, dropSpaces{}, a.Preprocessor())

	for i := 0; i < 5; i++ {
		a.WithPreprocessor(preprocess.Trim)
	}
	assert.Equal(t, preprocess.Trim, a.Preprocessor())

	a.WithPreprocessor(nil)
	assert.Equal(t, preprocess.NoOp, a.Preprocessor())
}

func TestWithNoPreprocessingEqualsNoOp(t *testing.T) {
	a := New(fuzzy.Lengths{})
	b := New(fuzzy.Lengths{})

	assert.Same(t, a, a.WithNoPreprocessing())
	b.WithPreprocessor(preprocess.NoOp)

	assert.Equal(t, b.Preprocessor(), a.Preprocessor())
	for _, pair := range [][2]string{{"  ab", "abcd"}, {"x", "  x  "}, {"", " "}} {
		assert.Equal(t, b.Compare(pair[0], pair[1]), a.Compare(pair[0], pair[1]))
	}
}

func TestPreprocessorIsIdempotent(t *testing.T) {
	a := NewWithPreprocessor(fuzzy.Ratio{}, preprocess.FoldAccents)
	first := a.Preprocessor()
	second := a.Preprocessor()
	assert.Equal(t, first, second)
}

func TestPanicsPropagate(t *testing.T) {
	boom := ports.PreprocessorFunc(func(string) string { panic("boom") })
	a := New(fuzzy.Ratio{})

	assert.PanicsWithValue(t, "boom", func() { a.CompareWith("a", "b", boom) })
	assert.PanicsWithValue(t, "boom", func() { a.WithPreprocessor(boom).Compare("a", "b") })
}

type capturingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (c *capturingLogger) Debug(msg string, _ ...interface{}) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}
func (c *capturingLogger) Info(string, ...interface{})  {}
func (c *capturingLogger) Warn(string, ...interface{})  {}
func (c *capturingLogger) Error(string, ...interface{}) {}
func (c *capturingLogger) Close() error                 { return nil }

func TestLogging(t *testing.T) {
	log := &capturingLogger{}
	a := New(fuzzy.Ratio{}).WithLogger(log)

	a.WithNoPreprocessing()
	a.Compare("a", "a")

	assert.Equal(t, []string{"Preprocessor configured", "Compared strings"}, log.messages)

	// A nil logger falls back to a silent one.
	require.NotPanics(t, func() { a.WithLogger(nil).Compare("a", "b") })
}

func TestConcurrentUse(t *testing.T) {
	a := New(fuzzy.Lengths{})
	strategies := []ports.Preprocessor{preprocess.Default, preprocess.NoOp, preprocess.Trim}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.WithPreprocessor(strategies[(i+j)%len(strategies)])
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				score := a.Compare("  ab", "abcd")
				assert.Contains(t, []int{0, 2}, score)
				assert.Equal(t, 0, a.CompareWith("  ab", "abcd", preprocess.NoOp))
			}
		}()
	}
	wg.Wait()
}
