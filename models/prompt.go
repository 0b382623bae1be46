package models

// Prompt is a reusable text template. Template may contain the literal
// placeholder "{transcription}", which is replaced by the caller, never by
// the server.
type Prompt struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Template string `json:"template"`
}
