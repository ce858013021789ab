package types

// Suggestion is a single autocomplete result offered for a search query
type Suggestion struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
