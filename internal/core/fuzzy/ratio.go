package fuzzy

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzy_compare/internal/pool"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/hbollon/go-edlib"
)

var runePool = pool.NewRuneBufferPool(128)

func applyPreprocessor(p ports.Preprocessor, s1, s2 string) (string, string) {
	if p == nil {
		return s1, s2
	}
	return p.Preprocess(s1), p.Preprocess(s2)
}

// ratio is 100 * 2*LCS / (|a|+|b|), counted in runes and rounded.
// Equal strings (including two empty ones) score 100, one empty side scores 0.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	lcs := edlib.LCS(a, b)
	return int(math.Round(100 * float64(2*lcs) / float64(total)))
}

// partialRatio is the best ratio of the shorter string against every window of the
// longer one that has the same rune length. Windows are visited in order of their
// shared-rune upper bound, so the scan stops once no remaining window can beat the best.
func partialRatio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}

	buf := runePool.Get()
	defer runePool.Put(buf)
	for _, r := range longer {
		*buf = append(*buf, r)
	}
	runes := *buf

	width := utf8.RuneCountInString(shorter)
	windows := windowBounds(shorter, runes, width)
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].bound > windows[j].bound })

	best := 0
	for _, w := range windows {
		if w.bound <= best {
			break
		}
		score := ratio(shorter, string(runes[w.start:w.start+width]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

type window struct {
	start int
	bound int
}

// windowBounds slides a width-rune window over runes and records, per start, the ratio
// the window could reach if every rune it shares with shorter lined up. The LCS never
// exceeds the multiset overlap, so the bound never undershoots the real ratio.
func windowBounds(shorter string, runes []rune, width int) []window {
	need := make(map[rune]int, width)
	for _, r := range shorter {
		need[r]++
	}
	have := make(map[rune]int, width)
	overlap := 0
	add := func(r rune) {
		have[r]++
		if have[r] <= need[r] {
			overlap++
		}
	}
	remove := func(r rune) {
		if have[r] <= need[r] {
			overlap--
		}
		have[r]--
	}

	for _, r := range runes[:width] {
		add(r)
	}
	windows := make([]window, 0, len(runes)-width+1)
	for start := 0; ; start++ {
		windows = append(windows, window{
			start: start,
			bound: int(math.Round(100 * float64(overlap) / float64(width))),
		})
		if start+width >= len(runes) {
			break
		}
		remove(runes[start])
		add(runes[start+width])
	}
	return windows
}

// Ratio scores the normalized longest-common-subsequence similarity in [0, 100].
type Ratio struct{}

// Score implements ports.Scorer.
func (Ratio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return ratio(a, b)
}

// PartialRatio scores how well the shorter input matches the best aligned
// substring of the longer one, in [0, 100].
type PartialRatio struct{}

// Score implements ports.Scorer.
func (PartialRatio) Score(s1, s2 string, p ports.Preprocessor) int {
	a, b := applyPreprocessor(p, s1, s2)
	return partialRatio(a, b)
}
