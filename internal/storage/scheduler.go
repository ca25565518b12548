package storage

import (
	"context"
	"sync"
	"time"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/storage/interfaces"
	"watchlist/internal/structures"

	"github.com/roylee0704/gron"
)

const jobTimeout = 30 * time.Second

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	source  interfaces.SnapshotImporter
	backup  *BackupManager
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	backupPath := s.config.Persistence.BackupPath
	backupInterval := s.config.Persistence.BackupInterval

	if backupPath != "" && backupInterval > 0 {
		s.cron.AddFunc(gron.Every(backupInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			if err := s.backup.SaveToFile(ctx, backupPath); err != nil {
				s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
				return
			}
			s.logger.Infof(providers.TypeApp, "Backup written to %s", backupPath)
		})
	}

	if s.config.Metrics.Enabled && s.config.Metrics.RefreshInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Metrics.RefreshInterval), func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			s.RefreshGauges(ctx)
		})
	}

	s.cron.Start()
}

// RefreshGauges publishes catalog size and per-user counters.
func (s *Scheduler) RefreshGauges(ctx context.Context) {
	snapshot, err := s.source.GetSnapshot(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Skipping gauge refresh: %s", err)
		return
	}
	s.metrics.SetCatalogSize(len(snapshot.Movies))
	for _, u := range snapshot.Users {
		s.metrics.SetUserStats(u.ID, models.ComputeStats(snapshot.Movies, u.ID))
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore imports the backup file, but only into an empty store.
func (s *Scheduler) Restore() error {
	path := s.config.Persistence.BackupPath
	if path == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	persisted, err := s.source.HasPersistedState(ctx)
	if err != nil {
		return err
	}
	if persisted {
		s.logger.Debugf(providers.TypeApp, "Store already holds a snapshot, backup %s ignored", path)
		return nil
	}

	restored, err := s.backup.LoadFromFile(ctx, path)
	if err != nil {
		return err
	}
	if restored {
		s.logger.Infof(providers.TypeApp, "Snapshot restored from backup %s", path)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	path := s.config.Persistence.BackupPath
	if path == "" {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.logger.Infof(providers.TypeApp, "Writing final backup...")
	if err := s.backup.SaveToFile(ctx, path); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, source interfaces.SnapshotImporter, backup *BackupManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		source:  source,
		backup:  backup,
		metrics: metrics,
	}
}
