package storage

import (
	"context"
	"errors"
	"fmt"
	"watchlist/internal/storage/interfaces"

	"github.com/go-redis/redis/v8"
)

// RedisBlobStore keeps blobs as plain string values.
type RedisBlobStore struct {
	client *redis.Client
}

func NewRedisBlobStore(url string) (interfaces.BlobStoreInterface, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisBlobStore{client: redis.NewClient(opt)}, nil
}

func (r *RedisBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, loadError(key, err)
	}
	return data, nil
}

// loadError maps a missing key to ErrBlobNotFound.
func loadError(key string, err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrBlobNotFound
	}
	return fmt.Errorf("load blob %q: %w", key, err)
}

func (r *RedisBlobStore) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

func (r *RedisBlobStore) Close() error {
	return r.client.Close()
}
