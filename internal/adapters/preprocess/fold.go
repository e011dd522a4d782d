package preprocess

import (
	"unicode"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type foldAccents struct{}

// Preprocess decomposes text, drops the combining marks and recomposes it,
// so "Crème Brûlée" becomes "Creme Brulee". Case is preserved.
func (foldAccents) Preprocess(text string) string {
	if text == "" {
		return ""
	}
	// transform.Chain keeps internal state, so each call gets its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

func (foldAccents) String() string { return NameFold }

// FoldAccents strips diacritics.
var FoldAccents ports.Preprocessor = foldAccents{}
