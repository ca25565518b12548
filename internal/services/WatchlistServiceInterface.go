package services

import (
	"context"
	"watchlist/internal/models"
)

// WatchlistServiceInterface is the data access port. The local and the remote
// backend are interchangeable behind it.
type WatchlistServiceInterface interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
	SwitchUser(ctx context.Context) (models.Snapshot, error)
	CreateMovie(ctx context.Context, input models.CreateMovieInput) (models.Movie, error)
	UpdatePerUser(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (models.Movie, error)
	DeleteMovie(ctx context.Context, movieID string) error
	StatsFor(ctx context.Context, userID string) (models.Stats, error)
}
