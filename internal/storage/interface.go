package storage

import (
	"context"
	"io"
)

// StorageInterface defines the interface for vehicle image storage backends
type StorageInterface interface {
	// SaveFile stores the contents of reader under key
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens the object stored under key
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// GenerateDownloadURL returns a URL the object can be fetched from
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
}
