package storage

import (
	"context"
	"io"
)

// Uploader pins a local file to content-addressable storage. The response is
// the provider's decoded JSON, unmodified; callers extract the content id with
// FirstNonEmpty since providers disagree on where they put it.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (map[string]interface{}, error)
}

// ObjectStorage defines the interface for object storage operations
type ObjectStorage interface {
	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the URL for accessing an object
	GetURL(key string) string

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)
}
