package generation

import "context"

// Request carries one completion call. Prompt is the already-filled
// template text.
type Request struct {
	Prompt      string
	Temperature float32
}

// Streamer produces completion text as a sequence of chunks. The callback
// is invoked once per chunk in order; returning an error from it aborts the
// stream. Stream returns once the backend stream ends or fails, so a
// failure after some chunks leaves the caller with a visibly truncated
// text, never a silently discarded one.
type Streamer interface {
	Stream(ctx context.Context, req Request, onChunk func(string) error) error
}
