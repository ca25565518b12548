package testutil

import (
	"context"
	"sync"
	"time"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/storage/interfaces"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Cleared int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Cleared++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    map[string]int
	Mutations   map[string]int
	Persistence map[string]int
	CacheHits   int
	CacheMisses int
	CatalogSize int
	UserStats   map[string]models.Stats
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Persistence == nil {
		m.Persistence = make(map[string]int)
	}
	m.Persistence[op]++
}

func (m *MockMetrics) IncMutations(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Mutations == nil {
		m.Mutations = make(map[string]int)
	}
	if err != nil {
		op += ":error"
	}
	m.Mutations[op]++
}

func (m *MockMetrics) SetCatalogSize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSize = count
}

func (m *MockMetrics) SetUserStats(userID string, stats models.Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UserStats == nil {
		m.UserStats = make(map[string]models.Stats)
	}
	m.UserStats[userID] = stats
}

// Mutation returns the recorded count for op, thread-safe.
func (m *MockMetrics) Mutation(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Mutations[op]
}

// MockBlobStore implements interfaces.BlobStoreInterface over a map, with
// injectable failures.
type MockBlobStore struct {
	mu        sync.Mutex
	Data      map[string][]byte
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Data: make(map[string][]byte)}
}

func (m *MockBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.Data[key]
	if !ok {
		return nil, interfaces.ErrBlobNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MockBlobStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockBlobStore) Close() error { return nil }

// MockWatchlistService implements services.WatchlistServiceInterface with
// injectable behavior. Unset funcs return zero values.
type MockWatchlistService struct {
	mu    sync.Mutex
	Calls []string

	GetSnapshotFn   func(ctx context.Context) (models.Snapshot, error)
	SwitchUserFn    func(ctx context.Context) (models.Snapshot, error)
	CreateMovieFn   func(ctx context.Context, input models.CreateMovieInput) (models.Movie, error)
	UpdatePerUserFn func(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (models.Movie, error)
	DeleteMovieFn   func(ctx context.Context, movieID string) error
	StatsForFn      func(ctx context.Context, userID string) (models.Stats, error)
}

func (m *MockWatchlistService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many times call was made.
func (m *MockWatchlistService) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *MockWatchlistService) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	m.record("GetSnapshot")
	if m.GetSnapshotFn != nil {
		return m.GetSnapshotFn(ctx)
	}
	return models.Snapshot{}, nil
}

func (m *MockWatchlistService) SwitchUser(ctx context.Context) (models.Snapshot, error) {
	m.record("SwitchUser")
	if m.SwitchUserFn != nil {
		return m.SwitchUserFn(ctx)
	}
	return models.Snapshot{}, nil
}

func (m *MockWatchlistService) CreateMovie(ctx context.Context, input models.CreateMovieInput) (models.Movie, error) {
	m.record("CreateMovie")
	if m.CreateMovieFn != nil {
		return m.CreateMovieFn(ctx, input)
	}
	return models.Movie{}, nil
}

func (m *MockWatchlistService) UpdatePerUser(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (models.Movie, error) {
	m.record("UpdatePerUser")
	if m.UpdatePerUserFn != nil {
		return m.UpdatePerUserFn(ctx, movieID, userID, patch)
	}
	return models.Movie{}, nil
}

func (m *MockWatchlistService) DeleteMovie(ctx context.Context, movieID string) error {
	m.record("DeleteMovie")
	if m.DeleteMovieFn != nil {
		return m.DeleteMovieFn(ctx, movieID)
	}
	return nil
}

func (m *MockWatchlistService) StatsFor(ctx context.Context, userID string) (models.Stats, error) {
	m.record("StatsFor")
	if m.StatsForFn != nil {
		return m.StatsForFn(ctx, userID)
	}
	return models.Stats{}, nil
}
