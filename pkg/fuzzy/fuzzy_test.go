package fuzzy

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	algo, err := NewRatio()
	require.NoError(t, err)
	assert.Equal(t, Default, algo.Preprocessor())
	assert.Equal(t, 100, algo.Compare("New York Mets", "new york mets!"))
}

func TestNewNilScorer(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilScorer)
}

func TestOptions(t *testing.T) {
	algo, err := NewLevenshtein(WithNoPreprocessing())
	require.NoError(t, err)
	assert.Equal(t, NoOp, algo.Preprocessor())
	assert.Equal(t, 1, algo.Compare("Mets", "mets"))

	algo, err = NewLevenshtein(WithPreprocessor(Lower))
	require.NoError(t, err)
	assert.Equal(t, 0, algo.Compare("Mets", "mets"))

	algo, err = NewLevenshtein(WithPreprocessor(nil))
	require.NoError(t, err)
	assert.Equal(t, NoOp, algo.Preprocessor())

	algo, err = NewJaroWinkler(WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 100, algo.Compare("a", "A"))
}

func TestConstructorsCoverRegistry(t *testing.T) {
	constructors := map[string]func(...Option) (*Algorithm, error){
		"ratio":            NewRatio,
		"partial_ratio":    NewPartialRatio,
		"token_sort_ratio": NewTokenSortRatio,
		"token_set_ratio":  NewTokenSetRatio,
		"weighted_ratio":   NewWeightedRatio,
		"levenshtein":      NewLevenshtein,
		"jaro_winkler":     NewJaroWinkler,
	}
	for name, ctor := range constructors {
		byCtor, err := ctor()
		require.NoError(t, err)
		byName, err := NewByName(name)
		require.NoError(t, err)
		assert.Equal(t, byName.Scorer(), byCtor.Scorer(), name)
	}

	_, err := NewByName("soundex")
	assert.ErrorIs(t, err, ErrUnknownScorer)
	assert.Contains(t, ScorerNames(), "lengths")
}

func TestFluentChain(t *testing.T) {
	algo, err := NewByName("lengths")
	require.NoError(t, err)

	assert.Equal(t, 2, algo.Compare("  ab", "abcd"))
	same := algo.WithPreprocessor(Trim).WithNoPreprocessing()
	assert.Same(t, algo, same)
	assert.Equal(t, 0, algo.Compare("  ab", "abcd"))
	assert.Equal(t, 2, algo.CompareWith("  ab", "abcd", Default))
}

func TestPreprocessorHelpers(t *testing.T) {
	stem, err := Stem("english")
	require.NoError(t, err)

	algo, err := NewTokenSortRatio(WithPreprocessor(Chain(FoldAccents, Default, stem)))
	require.NoError(t, err)
	assert.Equal(t, 100, algo.Compare("Running Cafés", "café runs"))

	_, err = Stem("klingon")
	assert.ErrorIs(t, err, ErrUnknownPreprocessor)

	p, err := PreprocessorByName("fold+lower", "")
	require.NoError(t, err)
	assert.Equal(t, "creme", p.Preprocess("CRÈME"))

	_, err = PreprocessorByName("soundex", "")
	assert.ErrorIs(t, err, ErrUnknownPreprocessor)
	assert.Contains(t, PreprocessorNames(), "stem")

	c := Cached(PreprocessorFunc(strings.ToUpper))
	assert.Equal(t, "ABC", c.Preprocess("abc"))
}

func TestWarmUp(t *testing.T) {
	algo, err := NewRatio(WithWarmUpConfig(WarmUpConfig{
		Concurrency:    2,
		Iterations:     5,
		SampleTextSize: 40,
		Duration:       time.Second,
	}))
	require.NoError(t, err)
	assert.Equal(t, 100, algo.Compare("a", "a"))
	assert.Positive(t, DefaultWarmUpConfig().Iterations)
}

func TestExtractor(t *testing.T) {
	choices := []string{"kitten", "sitting", "mitten", "bitten"}

	lev, err := NewLevenshtein()
	require.NoError(t, err)
	e, err := NewExtractor(lev, WithWorkers(2))
	require.NoError(t, err)

	best, ok, err := e.One(context.Background(), "Kitten", choices)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Match{Choice: "kitten", Index: 0, Score: 0}, best)

	ratio, err := NewRatio()
	require.NoError(t, err)
	e, err = NewExtractor(ratio, WithCutoff(80))
	require.NoError(t, err)
	matches, err := e.Sorted(context.Background(), "kitten", choices)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "kitten", matches[0].Choice)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 80)
	}

	reversed, err := NewExtractor(ratio, WithHigherIsBetter(false), WithExtractorLogger(nil))
	require.NoError(t, err)
	worst, _, err := reversed.One(context.Background(), "kitten", choices)
	require.NoError(t, err)
	assert.Equal(t, "sitting", worst.Choice)

	_, err = NewExtractor(nil)
	assert.Error(t, err)
}

func TestExtractorFromReader(t *testing.T) {
	algo, err := NewLevenshtein()
	require.NoError(t, err)
	ex, err := NewExtractor(algo, WithCutoff(2))
	require.NoError(t, err)

	matches, n, err := ex.TopReader(context.Background(), "kitten", strings.NewReader("sitting\nKitten!\n\nmitten\r\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, matches, 2)
	assert.Equal(t, Match{Choice: "Kitten!", Index: 1, Score: 0}, matches[0])
	assert.Equal(t, "mitten", matches[1].Choice)
}
