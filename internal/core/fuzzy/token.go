package fuzzy

import (
	"sort"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSort(a, b string, score func(string, string) int) int {
	return score(sortedTokens(a), sortedTokens(b))
}

func tokenSet(a, b string, score func(string, string) int) int {
	setA := tokenSetOf(a)
	setB := tokenSetOf(b)

	var common, onlyA, onlyB []string
	for t := range setA {
		if setB[t] {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	return max(
		score(sect, combinedA),
		score(sect, combinedB),
		score(combinedA, combinedB),
	)
}

func tokenSetOf(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

// TokenSortRatio sorts the whitespace separated tokens of both inputs before
// computing Ratio, so word order does not matter.
type TokenSortRatio struct{}

// Score implements ports.Scorer.
func (TokenSortRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return tokenSort(a, b, ratio)
}

// PartialTokenSortRatio is TokenSortRatio built on PartialRatio.
type PartialTokenSortRatio struct{}

// Score implements ports.Scorer.
func (PartialTokenSortRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return tokenSort(a, b, partialRatio)
}

// TokenSetRatio compares the shared tokens against each side's full token set,
// so duplicated or extra words weigh less than in TokenSortRatio.
type TokenSetRatio struct{}

// Score implements ports.Scorer.
func (TokenSetRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return tokenSet(a, b, ratio)
}

// PartialTokenSetRatio is TokenSetRatio built on PartialRatio.
type PartialTokenSetRatio struct{}

// Score implements ports.Scorer.
func (PartialTokenSetRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return tokenSet(a, b, partialRatio)
}
