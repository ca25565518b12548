package interfaces

import (
	"context"
	"watchlist/internal/models"
)

type SnapshotSource interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
}

// SnapshotImporter is a snapshot source that can be seeded from a backup.
type SnapshotImporter interface {
	SnapshotSource
	HasPersistedState(ctx context.Context) (bool, error)
	Import(ctx context.Context, snapshot models.Snapshot) error
}
