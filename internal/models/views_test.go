package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieWithTier(id string, createdAt int64, userID string, tier Tier) Movie {
	return Movie{
		ID:        id,
		Title:     id,
		CreatedAt: createdAt,
		Shared:    true,
		PerUser:   map[string]PerUserState{userID: {Tier: tier}},
	}
}

func ids(movies []Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterMovies_MatchesDirectorCaseInsensitive(t *testing.T) {
	movies := Seed(time.Now()).Movies

	got := FilterMovies(movies, "nolan")
	require.Len(t, got, 1)
	assert.Equal(t, "The Dark Knight", got[0].Title)

	got = FilterMovies(movies, "  NOLAN ")
	assert.Len(t, got, 1)
}

func TestFilterMovies_EmptyQueryMatchesAll(t *testing.T) {
	movies := Seed(time.Now()).Movies
	assert.Len(t, FilterMovies(movies, ""), 2)
	assert.Len(t, FilterMovies(movies, "   "), 2)
}

func TestFilterMovies_MatchesYearAndNotes(t *testing.T) {
	movies := Seed(time.Now()).Movies
	assert.Equal(t, []string{"m1"}, ids(FilterMovies(movies, "2021")))
	assert.Equal(t, []string{"m1"}, ids(FilterMovies(movies, "imax")))
	assert.Empty(t, FilterMovies(movies, "kubrick"))
}

func TestFilterMovies_NullYearDoesNotMatchNull(t *testing.T) {
	movies := []Movie{{ID: "m", Title: "Untitled"}}
	assert.Empty(t, FilterMovies(movies, "null"))
}

func TestFavorites(t *testing.T) {
	movies := Seed(time.Now()).Movies
	assert.Equal(t, []string{"m1"}, ids(Favorites(movies, "u1")))
	assert.Equal(t, []string{"m2"}, ids(Favorites(movies, "u2")))
	assert.Empty(t, Favorites(movies, "u3"))
}

func TestBuildTierBoard_SixLanes(t *testing.T) {
	movies := []Movie{
		movieWithTier("a", 1, "u1", TierS),
		movieWithTier("b", 2, "u1", TierD),
		movieWithTier("c", 3, "u2", TierA),
		movieWithTier("d", 4, "u1", TierNone),
	}
	board := BuildTierBoard(movies, "u1")

	assert.Len(t, board, 6)
	assert.Equal(t, []string{"a"}, ids(board.Lane(TierS)))
	assert.Equal(t, []string{"b"}, ids(board.Lane(TierD)))
	assert.Empty(t, board.Lane(TierA))
	// "c" has no record for u1
	assert.Equal(t, []string{"c", "d"}, ids(board.Lane(TierNone)))
}

func TestTopTier_RanksByTierThenNewest(t *testing.T) {
	movies := []Movie{
		movieWithTier("s-old", 1, "u1", TierS),
		movieWithTier("a", 2, "u1", TierA),
		movieWithTier("s-new", 3, "u1", TierS),
		movieWithTier("none", 4, "u1", TierNone),
	}
	got := TopTier(movies, "u1", TopTierLimit)
	assert.Equal(t, []string{"s-new", "s-old", "a"}, ids(got))
}

func TestTopTier_TruncatesToLimit(t *testing.T) {
	var movies []Movie
	for i := 0; i < 8; i++ {
		movies = append(movies, movieWithTier(string(rune('a'+i)), int64(i), "u1", TierB))
	}
	got := TopTier(movies, "u1", TopTierLimit)
	assert.Len(t, got, 5)
	assert.Equal(t, "h", got[0].ID)
}

func TestComputeStats_EmptyCatalog(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil, "u1"))
}

func TestComputeStats_RoundsPercentage(t *testing.T) {
	movies := []Movie{
		{ID: "1", PerUser: map[string]PerUserState{"u1": {Seen: true, Favorite: true, Tier: TierS}}},
		{ID: "2", PerUser: map[string]PerUserState{"u1": {Seen: true}}},
		{ID: "3", PerUser: map[string]PerUserState{"u2": {Seen: true}}},
	}
	st := ComputeStats(movies, "u1")
	assert.Equal(t, Stats{Total: 3, Fav: 1, Seen: 2, SeenPct: 67, TierS: 1}, st)
}

func TestSnapshot_NormalizeEnsuresPerUser(t *testing.T) {
	s := Snapshot{
		Users:  testUsers(),
		Movies: []Movie{{ID: "m"}},
	}
	s.Normalize()
	assert.Len(t, s.Movies[0].PerUser, 2)
}

func TestSnapshot_NextUserIDFlips(t *testing.T) {
	s := Seed(time.Now())
	assert.Equal(t, "u2", s.NextUserID())
	s.CurrentUserID = "u2"
	assert.Equal(t, "u1", s.NextUserID())
	s.CurrentUserID = "ghost"
	assert.Equal(t, "u1", s.NextUserID())
}

func TestSeed_DistinctPerUserStates(t *testing.T) {
	s := Seed(time.Now())
	require.Len(t, s.Users, 2)
	require.Len(t, s.Movies, 2)
	assert.Equal(t, "u1", s.CurrentUserID)
	assert.NotEqual(t, s.Movies[0].PerUser["u1"], s.Movies[0].PerUser["u2"])
	assert.Less(t, s.Movies[0].CreatedAt, s.Movies[1].CreatedAt)
}

func TestRecent_SortsByCreatedAtNotCatalogOrder(t *testing.T) {
	movies := []Movie{
		{ID: "old", CreatedAt: 1},
		{ID: "newest", CreatedAt: 9},
		{ID: "mid", CreatedAt: 5},
	}
	assert.Equal(t, []string{"newest", "mid", "old"}, ids(Recent(movies, RecentLimit)))
	assert.Equal(t, []string{"old", "newest", "mid"}, ids(movies), "input is not reordered")
}

func TestRecent_TruncatesToLimit(t *testing.T) {
	var movies []Movie
	for i := 0; i < 9; i++ {
		movies = append(movies, Movie{ID: string(rune('a' + i)), CreatedAt: int64(i)})
	}
	got := Recent(movies, RecentLimit)
	assert.Len(t, got, 6)
	assert.Equal(t, "i", got[0].ID)
	assert.Equal(t, "d", got[5].ID)
	assert.Empty(t, Recent(nil, RecentLimit))
}
