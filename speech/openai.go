package speech

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/lucasbecker/upload-ai/errors"
)

// OpenAIBackend transcribes audio with the Whisper API. Parameters are
// fixed: structured JSON response, zero temperature for deterministic
// output, language from configuration.
type OpenAIBackend struct {
	client   *openai.Client
	language string
}

func NewOpenAIBackend(client *openai.Client, language string) *OpenAIBackend {
	return &OpenAIBackend{client: client, language: language}
}

func (b *OpenAIBackend) Transcribe(ctx context.Context, audio io.Reader, filename, hint string) (string, error) {
	const op = "OpenAIBackend.Transcribe"

	resp, err := b.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       openai.Whisper1,
		Reader:      audio,
		FilePath:    filename,
		Language:    b.language,
		Format:      openai.AudioResponseFormatJSON,
		Temperature: 0,
		Prompt:      hint,
	})
	if err != nil {
		return "", apperrors.Transcription(op, err, "speech-to-text backend failed")
	}

	return resp.Text, nil
}
