package fuzzy

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// scanAllWindows scores every window without pruning.
func scanAllWindows(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		best = max(best, ratio(string(shorter), string(longer[start:start+len(shorter)])))
	}
	return best
}

func TestPartialRatioMatchesFullScan(t *testing.T) {
	pairs := [][2]string{
		{"yankees", "new york yankees"},
		{"new york mets", "the new york mets vs atlanta braves"},
		{"abcd", "xxabxcdxxabcxd"},
		{"héllo wörld", "say héllo to the wörld"},
		{"aaaa", "bbbbbbbbbb"},
		{"same", "same"},
		{"ab", "ba"},
		{"kitten", "sitting on a mitten"},
		{"zzz", "z"},
	}
	for _, p := range pairs {
		t.Run(p[0]+"/"+p[1], func(t *testing.T) {
			assert.Equal(t, scanAllWindows(p[0], p[1]), partialRatio(p[0], p[1]))
			assert.Equal(t, scanAllWindows(p[1], p[0]), partialRatio(p[1], p[0]))
		})
	}
}

func TestWindowBoundsNeverUndershoot(t *testing.T) {
	shorter := "brown fox"
	runes := []rune("the quick brown fox jumps over the lazy dog")
	width := len([]rune(shorter))

	windows := windowBounds(shorter, runes, width)
	assert.Len(t, windows, len(runes)-width+1)
	for _, w := range windows {
		assert.GreaterOrEqual(t, w.bound, ratio(shorter, string(runes[w.start:w.start+width])), "start %d", w.start)
	}
}

func TestWeightedRatioLongUnrelatedInputs(t *testing.T) {
	short := strings.Repeat("abcdefghij", 50)
	long := strings.Repeat("0123456789", 500)

	start := time.Now()
	score := WeightedRatio{}.Score(short, long, nil)
	assert.Equal(t, 0, score)
	assert.Less(t, time.Since(start), 5*time.Second)
}
