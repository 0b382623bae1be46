package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	apperrors "github.com/lucasbecker/upload-ai/errors"
)

// DiskStore keeps artifacts under a single root directory. The location it
// returns is an absolute path local to the server.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve storage root")
	}
	return &DiskStore{root: abs}, nil
}

func (s *DiskStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	const op = "DiskStore.Save"

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperrors.Storage(op, err, "failed to create artifact directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.Storage(op, err, "failed to create artifact file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", apperrors.Storage(op, err, "failed to write artifact")
	}

	return path, nil
}

func (s *DiskStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	const op = "DiskStore.Open"

	f, err := os.Open(location)
	if err != nil {
		return nil, apperrors.Storage(op, err, "failed to open artifact")
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, location string) error {
	const op = "DiskStore.Remove"

	if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
		return apperrors.Storage(op, err, "failed to remove artifact")
	}
	return nil
}
