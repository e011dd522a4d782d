package preprocess

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/kljensen/snowball"
	"github.com/surgebase/porter2"
)

// DefaultLanguage is the stemming language used when none is given.
const DefaultLanguage = "english"

var snowballLanguages = map[string]bool{
	"spanish":   true,
	"french":    true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

// StemLanguages lists the languages accepted by NewStem.
func StemLanguages() []string {
	return []string{"english", "french", "hungarian", "norwegian", "russian", "spanish", "swedish"}
}

// Stemmer reduces every whitespace separated token to its stem.
// Tokens are lower-cased first and rejoined with single spaces.
type Stemmer struct {
	language string
}

// NewStem creates a stemming preprocessor for language.
// English uses porter2, the other languages use snowball.
func NewStem(language string) (*Stemmer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	if language != DefaultLanguage && !snowballLanguages[language] {
		return nil, fmt.Errorf("%w: stemming language %q", ErrUnknownPreprocessor, language)
	}
	return &Stemmer{language: language}, nil
}

// Language returns the configured stemming language.
func (s *Stemmer) Language() string {
	return s.language
}

// Preprocess stems each token of text.
func (s *Stemmer) Preprocess(text string) string {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return ""
	}
	for i, token := range tokens {
		tokens[i] = s.stem(token)
	}
	return strings.Join(tokens, " ")
}

func (s *Stemmer) stem(token string) string {
	if s.language == DefaultLanguage {
		return porter2.Stem(token)
	}
	stemmed, err := snowball.Stem(token, s.language, true)
	if err != nil {
		return token
	}
	return stemmed
}

func (s *Stemmer) String() string { return NameStem + ":" + s.language }

var _ ports.Preprocessor = (*Stemmer)(nil)
