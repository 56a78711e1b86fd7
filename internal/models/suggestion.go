package models

// Suggestion is a drafted post produced from a short idea.
type Suggestion struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Cached bool   `json:"cached"`
}
