package interfaces

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Load when nothing was saved under the key yet.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStoreInterface persists opaque blobs under string keys.
type BlobStoreInterface interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
