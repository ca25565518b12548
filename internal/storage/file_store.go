package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"watchlist/internal/storage/interfaces"
)

// FileBlobStore keeps each key in its own file under dir.
type FileBlobStore struct {
	dir  string
	mode os.FileMode
}

func NewFileBlobStore(dir string) (interfaces.BlobStoreInterface, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileBlobStore{dir: dir, mode: 0o644}, nil
}

func (f *FileBlobStore) path(key string) string {
	return filepath.Join(f.dir, key+".blob")
}

func (f *FileBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *FileBlobStore) Save(_ context.Context, key string, data []byte) error {
	return writeFileAtomic(f.path(key), data, f.mode)
}

func (f *FileBlobStore) Close() error {
	return nil
}

// writeFileAtomic writes to a temp file, syncs it and renames it over fileName,
// so readers never observe a partially written blob.
func writeFileAtomic(fileName string, data []byte, mode os.FileMode) error {
	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
