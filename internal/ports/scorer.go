package ports

// Scorer defines a string comparison algorithm.
//
// Score must run p over s1 and s2 before computing anything else. The meaning of the returned
// integer (distance or similarity, and its scale) is documented by each implementation.
type Scorer interface {
	Score(s1, s2 string, p Preprocessor) int
}
