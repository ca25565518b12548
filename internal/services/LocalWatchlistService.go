package services

import (
	"context"
	"sync"
	"time"
	"watchlist/internal/errors"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/storage"
	"watchlist/internal/storage/interfaces"
	"watchlist/internal/structures"
)

// LocalWatchlistService keeps the whole snapshot as one blob under a fixed
// key. Every call reads the blob; every mutation rewrites it.
type LocalWatchlistService struct {
	mu      sync.Mutex
	store   interfaces.BlobStoreInterface
	codec   *storage.SnapshotCodec
	key     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
	newID   func() (string, error)
}

func NewLocalWatchlistService(
	conf *structures.Config,
	store interfaces.BlobStoreInterface,
	codec *storage.SnapshotCodec,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *LocalWatchlistService {
	key := conf.Storage.Key
	if key == "" {
		key = providers.DefaultStorageKey
	}
	return &LocalWatchlistService{
		store:   store,
		codec:   codec,
		key:     key,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   newMovieID,
	}
}

// read returns the persisted snapshot, or the seed when nothing usable is
// stored. persisted is false in the latter case.
func (s *LocalWatchlistService) read(ctx context.Context) (snapshot models.Snapshot, persisted bool, err error) {
	start := time.Now()
	data, err := s.store.Load(ctx, s.key)
	s.metrics.ObservePersistenceDuration("load", time.Since(start))

	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.Debugf(providers.TypeApp, "No snapshot under %q, using seed data", s.key)
			return models.Seed(s.now()), false, nil
		}
		s.logger.Errorf(providers.TypeApp, "Error loading snapshot: %s", err)
		return models.Snapshot{}, false, errors.Wrap(err, errors.CodeUnavailable, "storage unavailable")
	}

	snapshot, err = s.codec.Decode(data)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Stored snapshot unusable, reseeding: %s", err)
		return models.Seed(s.now()), false, nil
	}
	return snapshot, true, nil
}

func (s *LocalWatchlistService) write(ctx context.Context, snapshot models.Snapshot) error {
	data, err := s.codec.Encode(snapshot)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "unable to encode snapshot")
	}

	start := time.Now()
	err = s.store.Save(ctx, s.key, data)
	s.metrics.ObservePersistenceDuration("save", time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error saving snapshot: %s", err)
		return errors.Wrap(err, errors.CodeUnavailable, "storage unavailable")
	}
	return nil
}

func (s *LocalWatchlistService) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err := s.read(ctx)
	return snapshot, err
}

func (s *LocalWatchlistService) SwitchUser(ctx context.Context) (snapshot models.Snapshot, err error) {
	defer func() { s.metrics.IncMutations("switch_user", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err = s.read(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	snapshot.CurrentUserID = snapshot.NextUserID()
	if err = s.write(ctx, snapshot); err != nil {
		return models.Snapshot{}, err
	}
	return snapshot, nil
}

func (s *LocalWatchlistService) CreateMovie(ctx context.Context, input models.CreateMovieInput) (movie models.Movie, err error) {
	defer func() { s.metrics.IncMutations("create_movie", err) }()

	input = input.Normalize()
	if err = input.Validate(); err != nil {
		return models.Movie{}, err
	}

	id, err := s.newID()
	if err != nil {
		return models.Movie{}, errors.Wrap(err, errors.CodeInternal, "unable to generate movie id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err := s.read(ctx)
	if err != nil {
		return models.Movie{}, err
	}

	movie = models.NewMovie(id, input, snapshot.CurrentUserID, snapshot.Users, s.now())
	snapshot.Movies = append([]models.Movie{movie}, snapshot.Movies...)

	if err = s.write(ctx, snapshot); err != nil {
		return models.Movie{}, err
	}
	return movie.Clone(), nil
}

func (s *LocalWatchlistService) UpdatePerUser(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (movie models.Movie, err error) {
	defer func() { s.metrics.IncMutations("update_per_user", err) }()

	if err = patch.Validate(); err != nil {
		return models.Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err := s.read(ctx)
	if err != nil {
		return models.Movie{}, err
	}

	idx := snapshot.MovieIndex(movieID)
	if idx < 0 {
		return models.Movie{}, errors.NotFound("Movie not found")
	}
	if !snapshot.HasUser(userID) {
		return models.Movie{}, errors.NotFoundf("user %s not found", userID)
	}

	snapshot.Movies[idx].EnsurePerUser(snapshot.Users)
	snapshot.Movies[idx].ApplyPatch(userID, patch)

	if err = s.write(ctx, snapshot); err != nil {
		return models.Movie{}, err
	}
	return snapshot.Movies[idx].Clone(), nil
}

// DeleteMovie removes the movie if present. An unknown id still rewrites the
// snapshot and succeeds.
func (s *LocalWatchlistService) DeleteMovie(ctx context.Context, movieID string) (err error) {
	defer func() { s.metrics.IncMutations("delete_movie", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err := s.read(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Movie, 0, len(snapshot.Movies))
	for _, m := range snapshot.Movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	snapshot.Movies = kept

	return s.write(ctx, snapshot)
}

func (s *LocalWatchlistService) StatsFor(ctx context.Context, userID string) (models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, _, err := s.read(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	if !snapshot.HasUser(userID) {
		return models.Stats{}, errors.NotFoundf("user %s not found", userID)
	}
	return models.ComputeStats(snapshot.Movies, userID), nil
}

// HasPersistedState reports whether a decodable snapshot is stored.
func (s *LocalWatchlistService) HasPersistedState(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, persisted, err := s.read(ctx)
	return persisted, err
}

// Import replaces the stored snapshot wholesale.
func (s *LocalWatchlistService) Import(ctx context.Context, snapshot models.Snapshot) error {
	if len(snapshot.Users) == 0 {
		return storage.ErrEmptySnapshot
	}
	snapshot.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(ctx, snapshot)
}
