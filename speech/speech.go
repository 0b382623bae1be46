package speech

import (
	"context"
	"io"
)

// Backend is a pluggable speech-to-text backend. The hint biases the model
// toward domain vocabulary (proper nouns, jargon); it is not a generation
// instruction. Filename carries the artifact name for backends that need a
// container hint.
type Backend interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, hint string) (string, error)
}
