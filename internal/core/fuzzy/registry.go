package fuzzy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// Scorer names understood by ByName.
const (
	NameRatio                 = "ratio"
	NamePartialRatio          = "partial_ratio"
	NameTokenSortRatio        = "token_sort_ratio"
	NamePartialTokenSortRatio = "partial_token_sort_ratio"
	NameTokenSetRatio         = "token_set_ratio"
	NamePartialTokenSetRatio  = "partial_token_set_ratio"
	NameWeightedRatio         = "weighted_ratio"
	NameLevenshtein           = "levenshtein"
	NameOSA                   = "osa"
	NameJaroWinkler           = "jaro_winkler"
	NameLengths               = "lengths"
)

// ErrUnknownScorer is returned for names ByName does not know.
var ErrUnknownScorer = errors.New("unknown scorer")

type entry struct {
	scorer         ports.Scorer
	higherIsBetter bool
}

var registry = map[string]entry{
	NameRatio:                 {Ratio{}, true},
	NamePartialRatio:          {PartialRatio{}, true},
	NameTokenSortRatio:        {TokenSortRatio{}, true},
	NamePartialTokenSortRatio: {PartialTokenSortRatio{}, true},
	NameTokenSetRatio:         {TokenSetRatio{}, true},
	NamePartialTokenSetRatio:  {PartialTokenSetRatio{}, true},
	NameWeightedRatio:         {WeightedRatio{}, true},
	NameLevenshtein:           {Levenshtein{}, false},
	NameOSA:                   {OSA{}, false},
	NameJaroWinkler:           {JaroWinkler{}, true},
	NameLengths:               {Lengths{}, false},
}

// Names lists the registered scorer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a scorer. Names are case insensitive and accept '-' for '_'.
func ByName(name string) (ports.Scorer, error) {
	e, ok := registry[canonical(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
	}
	return e.scorer, nil
}

// HigherIsBetter reports whether larger scores from the named scorer mean closer strings.
// Unknown names report true.
func HigherIsBetter(name string) bool {
	e, ok := registry[canonical(name)]
	if !ok {
		return true
	}
	return e.higherIsBetter
}

// NameOf returns the registered name of scorer, or "" when it is not a built-in.
func NameOf(scorer ports.Scorer) string {
	for name, e := range registry {
		if e.scorer == scorer {
			return name
		}
	}
	return ""
}

func canonical(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
