package models

import (
	"sort"
	"strings"
)

const (
	// TopTierLimit is the default size of the top-tier ranking.
	TopTierLimit = 5
	// RecentLimit is the default size of the recently added list.
	RecentLimit = 6
)

// FilterMovies keeps movies whose title, director, notes or year contain q,
// case-insensitively. An empty query matches everything.
func FilterMovies(movies []Movie, q string) []Movie {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return movies
	}
	out := make([]Movie, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		hay := strings.ToLower(strings.Join([]string{m.Title, m.Director, m.Notes, m.YearString()}, " "))
		if strings.Contains(hay, q) {
			out = append(out, *m)
		}
	}
	return out
}

// Favorites keeps the movies userID marked as favorite.
func Favorites(movies []Movie, userID string) []Movie {
	out := make([]Movie, 0)
	for i := range movies {
		if movies[i].StateFor(userID).Favorite {
			out = append(out, movies[i])
		}
	}
	return out
}

// TierBoard groups movies into one lane per tier value.
type TierBoard map[Tier][]Movie

// Lane returns the movies of tier t in catalog order.
func (b TierBoard) Lane(t Tier) []Movie {
	return b[t]
}

// BuildTierBoard partitions movies by userID's tier. Movies without a record
// for userID land in the TierNone lane.
func BuildTierBoard(movies []Movie, userID string) TierBoard {
	board := make(TierBoard, len(TierLanes))
	for _, t := range TierLanes {
		board[t] = []Movie{}
	}
	for i := range movies {
		t := movies[i].StateFor(userID).Tier
		if !t.Valid() {
			t = TierNone
		}
		board[t] = append(board[t], movies[i])
	}
	return board
}

// TopTier ranks userID's tiered movies by tier, newest first within a tier,
// and keeps at most limit of them.
func TopTier(movies []Movie, userID string, limit int) []Movie {
	out := make([]Movie, 0)
	for i := range movies {
		if movies[i].StateFor(userID).Tier.Rank() > 0 {
			out = append(out, movies[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].StateFor(userID).Tier.Rank(), out[j].StateFor(userID).Tier.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Recent returns the newest movies by createdAt, at most limit of them. The
// input order does not matter.
func Recent(movies []Movie, limit int) []Movie {
	out := make([]Movie, len(movies))
	copy(out, movies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
