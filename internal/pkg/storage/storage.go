package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where receipt images live. The only implementation
// today is local disk; an object-store backend can satisfy the same contract.
type FileStorage interface {
	// Upload stores a file and returns the key it was stored under.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the client can fetch the file from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether a file is stored under the given key.
	Exists(ctx context.Context, path string) (bool, error)
}
