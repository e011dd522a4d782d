package preprocess

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzy_compare/internal/pool"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
)

// defaultPreprocessor implements the baseline normalization:
//
//   - a word rune (letter, digit, combining mark or '_') is kept and lower-cased
//   - any other rune acts as a separator
//   - runs of separators collapse to a single space
//   - leading and trailing separators are dropped
//
// So "  Hello,   World! " becomes "hello world" and "" stays "".
type defaultPreprocessor struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

const (
	asciiKeep byte = iota
	asciiSeparator
	asciiLower
)

func newDefaultPreprocessor() *defaultPreprocessor {
	d := &defaultPreprocessor{
		bytePool: pool.NewBufferPool(256),
	}
	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsUpper(r):
			d.asciiTable[i] = asciiLower
		case isWordRune(r):
			d.asciiTable[i] = asciiKeep
		default:
			d.asciiTable[i] = asciiSeparator
		}
	}
	return d
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Preprocess applies the baseline normalization to text.
func (d *defaultPreprocessor) Preprocess(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := d.bytePool.Get()
	defer d.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	// pending is set after a separator and only flushed before the next word rune,
	// which trims both ends for free.
	pending := false
	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			i++
			switch d.asciiTable[b] {
			case asciiSeparator:
				pending = len(*buffer) > 0
				continue
			case asciiLower:
				b += 'a' - 'A'
			}
			if pending {
				*buffer = append(*buffer, ' ')
				pending = false
			}
			*buffer = append(*buffer, b)
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if !isWordRune(r) {
			pending = len(*buffer) > 0
			continue
		}
		if pending {
			*buffer = append(*buffer, ' ')
			pending = false
		}
		*buffer = utf8.AppendRune(*buffer, unicode.ToLower(r))
	}

	return string(*buffer)
}

func (d *defaultPreprocessor) String() string { return NameDefault }

// Default is the baseline normalization used when an algorithm is built without a strategy.
var Default ports.Preprocessor = newDefaultPreprocessor()
