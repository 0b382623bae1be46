package models

// UploadResponse is returned by POST /videos.
type UploadResponse struct {
	ID string `json:"id"`
}

// TranscriptionRequest is the body of POST /videos/{videoId}/transcription.
// Prompt is a biasing hint for domain vocabulary, not an instruction.
type TranscriptionRequest struct {
	Prompt string `json:"prompt"`
}

// TranscriptionResponse is returned by POST /videos/{videoId}/transcription.
type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

// CompletionRequest is the body of POST /ai/completion. Prompt is the
// already-filled template; any remaining "{transcription}" token is sent to
// the backend literally. VideoID is informational only.
type CompletionRequest struct {
	Prompt      string  `json:"prompt"`
	VideoID     string  `json:"videoId,omitempty"`
	Temperature float32 `json:"temperature"`
}
