package models

import "time"

// Video is the persisted record for one uploaded audio artifact. Path is a
// server-local storage reference and is never exposed to clients.
type Video struct {
	ID            string    `json:"id"`
	Path          string    `json:"-"`
	Transcription string    `json:"transcription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasTranscription reports whether a transcription has been persisted.
func (v *Video) HasTranscription() bool { return v.Transcription != "" }
