package models

import (
	"strconv"
	"time"
)

type PerUserState struct {
	Seen     bool `json:"seen"`
	Favorite bool `json:"favorite"`
	Tier     Tier `json:"tier"`
}

// Movie is a catalog entry shared by all users. Only PerUser changes after creation.
// CreatedAt is epoch milliseconds, matching the browser wire format.
type Movie struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Year      *int                    `json:"year"`
	Director  string                  `json:"director"`
	Notes     string                  `json:"notes"`
	AddedBy   string                  `json:"addedBy"`
	CreatedAt int64                   `json:"createdAt"`
	Shared    bool                    `json:"shared"`
	PerUser   map[string]PerUserState `json:"perUser"`
}

// NewMovie builds a movie with a complete per-user map: the acting user's state
// is seeded from the input flags, everyone else starts at defaults.
// The input is expected to be normalized already.
func NewMovie(id string, input CreateMovieInput, actingUserID string, users []User, createdAt time.Time) Movie {
	m := Movie{
		ID:        id,
		Title:     input.Title,
		Year:      input.Year.Int(),
		Director:  input.Director,
		Notes:     input.Notes,
		AddedBy:   actingUserID,
		CreatedAt: createdAt.UnixMilli(),
		Shared:    true,
		PerUser:   make(map[string]PerUserState, len(users)),
	}
	m.EnsurePerUser(users)
	m.PerUser[actingUserID] = PerUserState{
		Seen:     input.Seen,
		Favorite: input.Favorite,
		Tier:     input.Tier,
	}
	return m
}

// EnsurePerUser adds default state for every user missing from PerUser.
func (m *Movie) EnsurePerUser(users []User) {
	if m.PerUser == nil {
		m.PerUser = make(map[string]PerUserState, len(users))
	}
	for _, u := range users {
		if _, ok := m.PerUser[u.ID]; !ok {
			m.PerUser[u.ID] = PerUserState{}
		}
	}
}

// StateFor returns the user's state, or the default state when absent.
func (m *Movie) StateFor(userID string) PerUserState {
	return m.PerUser[userID]
}

// ApplyPatch merges the fields present in patch into the user's state.
func (m *Movie) ApplyPatch(userID string, patch PerUserPatch) {
	if m.PerUser == nil {
		m.PerUser = make(map[string]PerUserState)
	}
	st := m.PerUser[userID]
	if patch.Seen != nil {
		st.Seen = *patch.Seen
	}
	if patch.Favorite != nil {
		st.Favorite = *patch.Favorite
	}
	if patch.Tier != nil {
		st.Tier = *patch.Tier
	}
	m.PerUser[userID] = st
}

func (m *Movie) CreatedTime() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// YearString is the year as text, empty when unknown.
func (m *Movie) YearString() string {
	if m.Year == nil {
		return ""
	}
	return strconv.Itoa(*m.Year)
}

// Clone returns a deep copy.
func (m Movie) Clone() Movie {
	if m.Year != nil {
		y := *m.Year
		m.Year = &y
	}
	if m.PerUser != nil {
		pu := make(map[string]PerUserState, len(m.PerUser))
		for k, v := range m.PerUser {
			pu[k] = v
		}
		m.PerUser = pu
	}
	return m
}
