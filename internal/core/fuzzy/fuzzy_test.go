package fuzzy

import (
	"strings"
	"sync"
	"testing"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorers(t *testing.T) {
	tests := []struct {
		name   string
		scorer ports.Scorer
		s1, s2 string
		p      ports.Preprocessor
		want   int
	}{
		{"ratio identical", Ratio{}, "this is a test", "this is a test", preprocess.NoOp, 100},
		{"ratio near", Ratio{}, "this is a test", "this is a test!", preprocess.NoOp, 97},
		{"ratio default strips punctuation", Ratio{}, "this is a test", "this is a test!", preprocess.Default, 100},
		{"ratio one substitution", Ratio{}, "abc", "abd", preprocess.NoOp, 67},
		{"ratio both empty", Ratio{}, "", "", preprocess.NoOp, 100},
		{"ratio one empty", Ratio{}, "a", "", preprocess.NoOp, 0},
		{"ratio nothing shared", Ratio{}, "abc", "xyz", preprocess.NoOp, 0},
		{"partial substring", PartialRatio{}, "this is a test", "this is a test!", preprocess.NoOp, 100},
		{"partial embedded", PartialRatio{}, "yankees", "new york yankees", preprocess.NoOp, 100},
		{"partial one empty", PartialRatio{}, "", "abc", preprocess.NoOp, 0},
		{"token sort order", TokenSortRatio{}, "fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear", preprocess.NoOp, 100},
		{"token set duplicates", TokenSetRatio{}, "fuzzy was a bear", "fuzzy fuzzy was a bear", preprocess.NoOp, 100},
		{"partial token sort", PartialTokenSortRatio{}, "york new", "zoo york new", preprocess.NoOp, 100},
		{"partial token set", PartialTokenSetRatio{}, "mets new york", "new york mets vs atlanta braves", preprocess.NoOp, 100},
		{"weighted identical after default", WeightedRatio{}, "new YORK mets!", "new york mets", preprocess.Default, 100},
		{"weighted empty", WeightedRatio{}, "", "new york mets", preprocess.Default, 0},
		{"weighted only punctuation", WeightedRatio{}, "!!!", "abc", preprocess.Default, 0},
		{"levenshtein", Levenshtein{}, "kitten", "sitting", preprocess.NoOp, 3},
		{"levenshtein default", Levenshtein{}, "Kitten", "kitten", preprocess.Default, 0},
		{"levenshtein empty", Levenshtein{}, "", "abc", preprocess.NoOp, 3},
		{"osa transposition", OSA{}, "ca", "ac", preprocess.NoOp, 1},
		{"jaro winkler identical", JaroWinkler{}, "martha", "martha", preprocess.NoOp, 100},
		{"jaro winkler transposition", JaroWinkler{}, "martha", "marhta", preprocess.NoOp, 96},
		{"jaro winkler empty", JaroWinkler{}, "", "martha", preprocess.NoOp, 0},
		{"lengths default", Lengths{}, "  ab", "abcd", preprocess.Default, 2},
		{"lengths no preprocessing", Lengths{}, "  ab", "abcd", preprocess.NoOp, 0},
		{"lengths runes", Lengths{}, "héé", "h", preprocess.NoOp, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scorer.Score(tt.s1, tt.s2, tt.p))
		})
	}
}

func TestSimilarityScorersStayInRange(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"new york mets", "new york meats"},
		{"short", "a considerably longer string that contains short somewhere"},
		{"Ünïcode strings", "unicode strings"},
	}
	for _, name := range Names() {
		if !HigherIsBetter(name) {
			continue
		}
		scorer, err := ByName(name)
		require.NoError(t, err)
		for _, pair := range pairs {
			score := scorer.Score(pair[0], pair[1], preprocess.Default)
			assert.GreaterOrEqual(t, score, 0, "%s(%q, %q)", name, pair[0], pair[1])
			assert.LessOrEqual(t, score, 100, "%s(%q, %q)", name, pair[0], pair[1])
		}
	}
}

type recordingPreprocessor struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingPreprocessor) Preprocess(text string) string {
	r.mu.Lock()
	r.seen = append(r.seen, text)
	r.mu.Unlock()
	return strings.ToUpper(text)
}

func TestEveryScorerPreprocessesBothInputs(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			scorer, err := ByName(name)
			require.NoError(t, err)

			rec := &recordingPreprocessor{}
			scorer.Score("left", "right", rec)
			assert.ElementsMatch(t, []string{"left", "right"}, rec.seen)
		})
	}
}

func TestPreprocessorShapesScore(t *testing.T) {
	upper := ports.PreprocessorFunc(strings.ToUpper)
	assert.Equal(t, 0, Levenshtein{}.Score("abc", "ABC", upper))
	assert.Equal(t, 3, Levenshtein{}.Score("abc", "ABC", preprocess.NoOp))
	assert.Equal(t, 3, Levenshtein{}.Score("abc", "ABC", nil))
}

func TestWeightedRatioPrefersPartialForLongerChoice(t *testing.T) {
	short := "yankees"
	long := "new york yankees baseball club"

	w := WeightedRatio{}.Score(short, long, preprocess.Default)
	r := Ratio{}.Score(short, long, preprocess.Default)
	assert.Greater(t, w, r)
	assert.LessOrEqual(t, w, 90)
}

func TestRegistry(t *testing.T) {
	assert.Len(t, Names(), 11)
	assert.IsIncreasing(t, Names())

	s, err := ByName("Token-Sort-Ratio")
	require.NoError(t, err)
	assert.Equal(t, TokenSortRatio{}, s)
	assert.Equal(t, NameTokenSortRatio, NameOf(s))

	_, err = ByName("soundex")
	assert.ErrorIs(t, err, ErrUnknownScorer)

	assert.True(t, HigherIsBetter(NameRatio))
	assert.False(t, HigherIsBetter(NameLevenshtein))
	assert.False(t, HigherIsBetter("LENGTHS"))
	assert.True(t, HigherIsBetter("soundex"))

	assert.Equal(t, "", NameOf(nil))
}

func BenchmarkWeightedRatio(b *testing.B) {
	s1 := "The quick brown fox jumps over the lazy dog"
	s2 := "the lazy dog was jumped over by a quick brown fox"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WeightedRatio{}.Score(s1, s2, preprocess.Default)
	}
}

func BenchmarkPartialRatio(b *testing.B) {
	s1 := "brown fox"
	s2 := "The quick brown fox jumps over the lazy dog"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = PartialRatio{}.Score(s1, s2, preprocess.NoOp)
	}
}
