package storage

import (
	"context"
	"io"
)

// Store persists audio artifacts at server-chosen locations. Save returns
// the location to persist on the video record; Open resolves it back to a
// readable stream. Remove deletes an artifact; removing a missing one is
// not an error.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) (location string, err error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Remove(ctx context.Context, location string) error
}
