package models

import "math"

// Stats is derived per user, never stored.
type Stats struct {
	Total   int `json:"total"`
	Fav     int `json:"fav"`
	Seen    int `json:"seen"`
	SeenPct int `json:"seenPct"`
	TierS   int `json:"tierS"`
}

// ComputeStats counts over the whole catalog. A movie without a record for
// userID counts as defaults.
func ComputeStats(movies []Movie, userID string) Stats {
	var st Stats
	for i := range movies {
		pu := movies[i].StateFor(userID)
		if pu.Favorite {
			st.Fav++
		}
		if pu.Seen {
			st.Seen++
		}
		if pu.Tier == TierS {
			st.TierS++
		}
	}
	st.Total = len(movies)
	if st.Total > 0 {
		st.SeenPct = int(math.Round(float64(st.Seen) / float64(st.Total) * 100))
	}
	return st
}
