package state

import "watchlist/internal/models"

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// Me is the acting user, if known.
func (s *Store) Me() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(s.state.CurrentUserID)
}

// SetTarget selects whose per-user state the views show. An empty id goes
// back to the default.
func (s *Store) SetTarget(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID != "" {
		if _, ok := s.findUser(userID); !ok {
			return false
		}
	}
	s.target = userID
	return true
}

// Target is the explicitly selected user when set and still known. Otherwise
// it is the first user other than the acting one, falling back to the acting
// user when nobody else exists.
func (s *Store) Target() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetLocked()
}

func (s *Store) targetLocked() (models.User, bool) {
	if s.target != "" {
		if u, ok := s.findUser(s.target); ok {
			return u, true
		}
	}
	for _, u := range s.state.Users {
		if u.ID != s.state.CurrentUserID {
			return u, true
		}
	}
	return s.findUser(s.state.CurrentUserID)
}

// User looks up a known user without touching the selected target.
func (s *Store) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(id)
}

func (s *Store) findUser(id string) (models.User, bool) {
	for _, u := range s.state.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FilteredMovies is the working list: the catalog narrowed by the global query.
func (s *Store) FilteredMovies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMovies(models.FilterMovies(s.state.Movies, s.state.GlobalQuery))
}

func (s *Store) Favorites(userID string) []models.Movie {
	return models.Favorites(s.FilteredMovies(), userID)
}

func (s *Store) TierBoard(userID string) models.TierBoard {
	return models.BuildTierBoard(s.FilteredMovies(), userID)
}

func (s *Store) TopTier(userID string) []models.Movie {
	return models.TopTier(s.FilteredMovies(), userID, models.TopTierLimit)
}

// Recent is the working list's newest movies, as shown on the dashboard.
func (s *Store) Recent() []models.Movie {
	return models.Recent(s.FilteredMovies(), models.RecentLimit)
}

func cloneMovies(movies []models.Movie) []models.Movie {
	out := make([]models.Movie, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}
