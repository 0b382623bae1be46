package video

import (
	"context"
	"io"

	"github.com/lucasbecker/upload-ai/models"
)

type Service interface {
	// Upload stores an audio artifact and mints a new video record. Every
	// upload creates a new record; there is no idempotency key.
	Upload(ctx context.Context, filename string, audio io.Reader) (*models.Video, error)

	// Transcribe runs the speech-to-text backend over the stored artifact
	// and persists the result onto the record, overwriting any prior value.
	// The hint biases domain vocabulary.
	Transcribe(ctx context.Context, id, hint string) (string, error)

	// Get retrieves a video record by id.
	Get(ctx context.Context, id string) (*models.Video, error)
}

type Config struct {
	// ArtifactPrefix is prepended to the server-chosen storage key.
	ArtifactPrefix string
}
