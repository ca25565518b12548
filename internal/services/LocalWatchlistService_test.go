package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
	watchErrors "watchlist/internal/errors"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/storage"
	"watchlist/internal/structures"
	"watchlist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

type localFixture struct {
	svc     *LocalWatchlistService
	store   *testutil.MockBlobStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newLocalFixture(t *testing.T) *localFixture {
	t.Helper()
	comp, err := storage.NewZstdCompressor()
	require.NoError(t, err)
	codec := storage.NewSnapshotCodec(comp)
	t.Cleanup(codec.Close)

	f := &localFixture{
		store:   testutil.NewMockBlobStore(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	f.svc = NewLocalWatchlistService(&structures.Config{}, f.store, codec, f.logger, f.metrics)

	var seq int
	var mu sync.Mutex
	f.svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fixedNow.Add(time.Duration(seq) * time.Millisecond)
	}
	return f
}

func assertPerUserComplete(t *testing.T, s models.Snapshot) {
	t.Helper()
	for _, m := range s.Movies {
		for _, u := range s.Users {
			_, ok := m.PerUser[u.ID]
			assert.True(t, ok, "movie %s missing state for %s", m.ID, u.ID)
		}
	}
}

func TestLocal_EmptyStoreReturnsSeed(t *testing.T) {
	f := newLocalFixture(t)

	s, err := f.svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", s.CurrentUserID)
	require.Len(t, s.Movies, 2)
	assert.Equal(t, "Dune", s.Movies[0].Title)
	assertPerUserComplete(t, s)
	assert.Equal(t, 0, f.store.SaveCalls)
}

func TestLocal_CorruptBlobReseeds(t *testing.T) {
	f := newLocalFixture(t)
	f.store.Data[providers.DefaultStorageKey] = []byte("\x00garbage")

	s, err := f.svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Users, 2)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

func TestLocal_EmptyUserListReseeds(t *testing.T) {
	f := newLocalFixture(t)
	f.store.Data[providers.DefaultStorageKey] = []byte(`{"users":[],"currentUserId":"","movies":[{"id":"x","title":"Lost"}]}`)

	s, err := f.svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Users, 2)
	assert.Equal(t, -1, s.MovieIndex("x"))
}

func TestLocal_StoreFailureIsUnavailable(t *testing.T) {
	f := newLocalFixture(t)
	f.store.LoadErr = errors.New("disk on fire")

	_, err := f.svc.GetSnapshot(context.Background())
	assert.True(t, watchErrors.Is(err, watchErrors.ErrUnavailable))

	f.store.LoadErr = nil
	f.store.SaveErr = errors.New("read-only fs")
	_, err = f.svc.CreateMovie(context.Background(), models.CreateMovieInput{Title: "Heat"})
	assert.True(t, watchErrors.Is(err, watchErrors.ErrUnavailable))
	assert.Equal(t, 1, f.metrics.Mutation("create_movie:error"))
}

func TestLocal_CreateMovieTrimsAndPrepends(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	m, err := f.svc.CreateMovie(ctx, models.CreateMovieInput{Title: "  Dune  ", Year: " 2021 ", Tier: models.TierS, Favorite: true})
	require.NoError(t, err)
	assert.Equal(t, "Dune", m.Title)
	assert.Equal(t, "u1", m.AddedBy)
	require.NotNil(t, m.Year)
	assert.Equal(t, 2021, *m.Year)
	assert.Regexp(t, `^m-[A-Za-z0-9_-]{21}$`, m.ID)
	assert.Equal(t, models.PerUserState{Favorite: true, Tier: models.TierS}, m.PerUser["u1"])
	assert.Equal(t, models.PerUserState{}, m.PerUser["u2"])

	s, err := f.svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, s.Movies, 3)
	assert.Equal(t, m.ID, s.Movies[0].ID)
	assert.NotEqual(t, "m1", m.ID)
	assert.NotEqual(t, "m2", m.ID)
	assertPerUserComplete(t, s)
}

func TestLocal_CreateMovieFreshIDs(t *testing.T) {
	f := newLocalFixture(t)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		m, err := f.svc.CreateMovie(context.Background(), models.CreateMovieInput{Title: fmt.Sprintf("movie %d", i)})
		require.NoError(t, err)
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}
}

func TestLocal_CreateMovieRejectsBlankTitle(t *testing.T) {
	f := newLocalFixture(t)
	for _, title := range []string{"", "   "} {
		_, err := f.svc.CreateMovie(context.Background(), models.CreateMovieInput{Title: title})
		assert.True(t, watchErrors.Is(err, watchErrors.ErrValidation))
	}
	assert.Equal(t, 0, f.store.SaveCalls)

	s, err := f.svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Movies, 2)
}

func TestLocal_CreateMovieNonIntegralYearIsNull(t *testing.T) {
	f := newLocalFixture(t)
	m, err := f.svc.CreateMovie(context.Background(), models.CreateMovieInput{Title: "Heat", Year: "nineteen"})
	require.NoError(t, err)
	assert.Nil(t, m.Year)
}

func TestLocal_UpdatePerUserMergesPatches(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	yes := true

	_, err := f.svc.UpdatePerUser(ctx, "m2", "u1", models.PerUserPatch{Favorite: &yes})
	require.NoError(t, err)
	m, err := f.svc.UpdatePerUser(ctx, "m2", "u1", models.PerUserPatch{Seen: &yes})
	require.NoError(t, err)

	assert.Equal(t, models.PerUserState{Seen: true, Favorite: true}, m.PerUser["u1"])
	// the other user is untouched
	assert.Equal(t, models.PerUserState{Seen: true, Favorite: true, Tier: models.TierS}, m.PerUser["u2"])

	s, err := f.svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, m, s.Movies[s.MovieIndex("m2")])
}

func TestLocal_UpdatePerUserErrors(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	yes := true
	bad := models.Tier("Z")

	_, err := f.svc.UpdatePerUser(ctx, "nope", "u1", models.PerUserPatch{Seen: &yes})
	assert.True(t, watchErrors.Is(err, watchErrors.ErrNotFound))

	_, err = f.svc.UpdatePerUser(ctx, "m1", "ghost", models.PerUserPatch{Seen: &yes})
	assert.True(t, watchErrors.Is(err, watchErrors.ErrNotFound))

	_, err = f.svc.UpdatePerUser(ctx, "m1", "u1", models.PerUserPatch{Tier: &bad})
	assert.True(t, watchErrors.Is(err, watchErrors.ErrValidation))

	assert.Equal(t, 0, f.store.SaveCalls)
}

func TestLocal_DeleteMovieIsIdempotent(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteMovie(ctx, "m1"))
	require.NoError(t, f.svc.DeleteMovie(ctx, "m1"))

	s, err := f.svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, s.MovieIndex("m1"))
	assert.Len(t, s.Movies, 1)
	assert.Equal(t, 2, f.metrics.Mutation("delete_movie"))
}

func TestLocal_SwitchUserFlipsAndPersists(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	s, err := f.svc.SwitchUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", s.CurrentUserID)

	m, err := f.svc.CreateMovie(ctx, models.CreateMovieInput{Title: "Heat", Seen: true})
	require.NoError(t, err)
	assert.Equal(t, "u2", m.AddedBy)
	assert.True(t, m.PerUser["u2"].Seen)

	s, err = f.svc.SwitchUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.CurrentUserID)
}

func TestLocal_StatsFor(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	st, err := f.svc.StatsFor(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 2, Fav: 1, Seen: 1, SeenPct: 50, TierS: 1}, st)

	_, err = f.svc.StatsFor(ctx, "ghost")
	assert.True(t, watchErrors.Is(err, watchErrors.ErrNotFound))
}

func TestLocal_StatsForEmptyCatalog(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.DeleteMovie(ctx, "m1"))
	require.NoError(t, f.svc.DeleteMovie(ctx, "m2"))

	st, err := f.svc.StatsFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, st)
}

func TestLocal_RoundTripIsExact(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	want := models.Seed(fixedNow)
	want.CurrentUserID = "u2"
	want.Movies[0].Notes = "ñandú, \"quoted\" & <tags>"
	require.NoError(t, f.svc.Import(ctx, want))

	got, err := f.svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	persisted, err := f.svc.HasPersistedState(ctx)
	require.NoError(t, err)
	assert.True(t, persisted)
}

func TestLocal_ImportRejectsEmptyUsers(t *testing.T) {
	f := newLocalFixture(t)
	err := f.svc.Import(context.Background(), models.Snapshot{})
	assert.ErrorIs(t, err, storage.ErrEmptySnapshot)

	persisted, err := f.svc.HasPersistedState(context.Background())
	require.NoError(t, err)
	assert.False(t, persisted)
}

func TestLocal_ConcurrentCreatesAreSerialized(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.CreateMovie(ctx, models.CreateMovieInput{Title: fmt.Sprintf("m%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	s, err := f.svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, s.Movies, 12)
}
