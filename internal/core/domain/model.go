package domain

// Match is the outcome of comparing a query against one choice.
type Match struct {
	// Choice is the candidate string as supplied by the caller.
	Choice string `json:"choice"`
	// Index is the position of Choice in the input slice.
	Index int `json:"index"`
	// Score is the raw scorer output.
	Score int `json:"score"`
}
