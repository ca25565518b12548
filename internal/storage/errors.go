package storage

import (
	"watchlist/internal/errors"
	"watchlist/internal/storage/interfaces"
)

var (
	ErrBlobNotFound  = interfaces.ErrBlobNotFound
	ErrEmptySnapshot = errors.New("snapshot has no users")
)
