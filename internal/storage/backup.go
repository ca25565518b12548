package storage

import (
	"context"
	"os"
	"watchlist/internal/providers"
	"watchlist/internal/storage/interfaces"
)

// BackupManager copies the live snapshot to a local file and back.
type BackupManager struct {
	source interfaces.SnapshotImporter
	codec  *SnapshotCodec
	logger providers.Logger
}

func NewBackupManager(codec *SnapshotCodec, source interfaces.SnapshotImporter, logger providers.Logger) *BackupManager {
	return &BackupManager{
		source: source,
		codec:  codec,
		logger: logger,
	}
}

func (b *BackupManager) SaveToFile(ctx context.Context, fileName string) error {
	snapshot, err := b.source.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data, err := b.codec.Encode(snapshot)
	if err != nil {
		return err
	}
	return writeFileAtomic(fileName, data, 0o644)
}

// LoadFromFile imports the backup into the source. A missing file is not an
// error; restored reports whether anything was imported.
func (b *BackupManager) LoadFromFile(ctx context.Context, fileName string) (restored bool, err error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	snapshot, err := b.codec.Decode(data)
	if err != nil {
		b.logger.Warnf(providers.TypeApp, "Backup %s is unusable: %s", fileName, err)
		return false, err
	}
	if err := b.source.Import(ctx, snapshot); err != nil {
		return false, err
	}
	return true, nil
}
