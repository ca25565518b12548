package models

import "time"

const day = 24 * time.Hour

// Seed is the dataset used when no usable persisted state exists.
func Seed(now time.Time) Snapshot {
	users := []User{
		{ID: "u1", Name: "Enzo", Initial: "E"},
		{ID: "u2", Name: "Partner", Initial: "P"},
	}
	dune, darkKnight := 2021, 2008

	movies := []Movie{
		{
			ID:        "m1",
			Title:     "Dune",
			Year:      &dune,
			Director:  "Denis Villeneuve",
			Notes:     "IMAX recomendado",
			AddedBy:   "u1",
			CreatedAt: now.Add(-6 * day).UnixMilli(),
			Shared:    true,
			PerUser: map[string]PerUserState{
				"u1": {Seen: true, Favorite: true, Tier: TierA},
				"u2": {},
			},
		},
		{
			ID:        "m2",
			Title:     "The Dark Knight",
			Year:      &darkKnight,
			Director:  "Christopher Nolan",
			AddedBy:   "u2",
			CreatedAt: now.Add(-2 * day).UnixMilli(),
			Shared:    true,
			PerUser: map[string]PerUserState{
				"u1": {},
				"u2": {Seen: true, Favorite: true, Tier: TierS},
			},
		},
	}

	return Snapshot{Users: users, CurrentUserID: "u1", Movies: movies}
}
