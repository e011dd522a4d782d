package fuzzy

import (
	"math"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/hbollon/go-edlib"
)

// Levenshtein returns the rune level edit distance (insertions, deletions, substitutions).
type Levenshtein struct{}

// Score implements ports.Scorer.
func (Levenshtein) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return edlib.LevenshteinDistance(a, b)
}

// OSA returns the optimal string alignment distance, which also counts the
// transposition of two adjacent runes as a single edit.
type OSA struct{}

// Score implements ports.Scorer.
func (OSA) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return edlib.OSADamerauLevenshteinDistance(a, b)
}

// JaroWinkler returns the Jaro-Winkler similarity scaled to [0, 100].
type JaroWinkler struct{}

// Score implements ports.Scorer.
func (JaroWinkler) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return int(math.Round(100 * float64(edlib.JaroWinklerSimilarity(a, b))))
}

// Lengths returns the absolute difference of the rune counts of both inputs.
type Lengths struct{}

// Score implements ports.Scorer.
func (Lengths) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff < 0 {
		return -diff
	}
	return diff
}
