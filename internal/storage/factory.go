package storage

import (
	"fmt"
	"path/filepath"
	"watchlist/internal/providers"
	"watchlist/internal/storage/interfaces"
	"watchlist/internal/structures"
)

const (
	DriverFile   = "file"
	DriverSqlite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// NewBlobStore opens the store selected by storage.driver. The returned
// cleanup closes it.
func NewBlobStore(conf *structures.Config, logger providers.Logger) (interfaces.BlobStoreInterface, func(), error) {
	var (
		store interfaces.BlobStoreInterface
		err   error
	)

	switch conf.Storage.Driver {
	case DriverFile, "":
		store, err = NewFileBlobStore(conf.Storage.Dir)
	case DriverSqlite:
		path := conf.Storage.SqlitePath
		if path == "" {
			path = filepath.Join(conf.Storage.Dir, "watchlist.db")
		}
		store, err = NewSqliteBlobStore(path)
	case DriverRedis:
		store, err = NewRedisBlobStore(conf.Storage.RedisURL)
	case DriverMemory:
		store = NewMemoryBlobStore()
	default:
		err = fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Infof(providers.TypeApp, "Blob store initialized: driver=%s", conf.Storage.Driver)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error closing blob store: %s", err)
		}
	}
	return store, cleanup, nil
}
