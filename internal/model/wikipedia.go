package model

// WikipediaSummary is the Wikipedia REST page-summary payload, reduced to
// the fields the description repository reads.
type WikipediaSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Description string `json:"description"`
}
