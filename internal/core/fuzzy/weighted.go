package fuzzy

import (
	"math"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

const (
	unbaseScale       = 0.95
	partialScale      = 0.90
	longPartialScale  = 0.60
	partialLenRatio   = 1.5
	longPartialLenCap = 8.0
)

// WeightedRatio blends Ratio, the partial scorers and the token scorers depending on how
// different the input lengths are, and returns the best weighted score in [0, 100].
// An input that preprocesses to the empty string scores 0.
type WeightedRatio struct{}

// Score implements ports.Scorer.
func (WeightedRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	if a == "" || b == "" {
		return 0
	}

	base := float64(ratio(a, b))

	la := float64(utf8.RuneCountInString(a))
	lb := float64(utf8.RuneCountInString(b))
	lenRatio := math.Max(la, lb) / math.Min(la, lb)

	if lenRatio < partialLenRatio {
		tsor := float64(tokenSort(a, b, ratio)) * unbaseScale
		tser := float64(tokenSet(a, b, ratio)) * unbaseScale
		return int(math.Round(math.Max(base, math.Max(tsor, tser))))
	}

	scale := partialScale
	if lenRatio > longPartialLenCap {
		scale = longPartialScale
	}
	partial := float64(partialRatio(a, b)) * scale
	ptsor := float64(tokenSort(a, b, partialRatio)) * unbaseScale * scale
	ptser := float64(tokenSet(a, b, partialRatio)) * unbaseScale * scale

	return int(math.Round(math.Max(math.Max(base, partial), math.Max(ptsor, ptser))))
}
