package ports

// Preprocessor defines a text preprocessing strategy applied to both inputs of a comparison.
// Implementations must be deterministic and must accept any string, including the empty one.
type Preprocessor interface {
	Preprocess(text string) string
}

// PreprocessorFunc adapts an ordinary function to the Preprocessor interface.
type PreprocessorFunc func(text string) string

// Preprocess calls f(text).
func (f PreprocessorFunc) Preprocess(text string) string {
	return f(text)
}
