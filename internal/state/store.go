// Package state holds the client-side view of the watchlist: the last
// snapshot received from the data access port plus local UI state.
package state

import (
	"context"
	"strings"
	"sync"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/services"
)

// LoginRoute is where Init sends the navigator after a failed load.
const LoginRoute = "/login"

// Navigator is the presentation layer's router.
type Navigator interface {
	CurrentRoute() string
	Redirect(route string)
}

type State struct {
	Loading       bool
	Users         []models.User
	CurrentUserID string
	Movies        []models.Movie
	GlobalQuery   string
}

func (s State) clone() State {
	snap := models.Snapshot{Users: s.Users, CurrentUserID: s.CurrentUserID, Movies: s.Movies}.Clone()
	s.Users, s.Movies = snap.Users, snap.Movies
	return s
}

// Store is the single source of truth for a presentation layer. Every
// mutation goes through the port first and then merges the port's answer.
type Store struct {
	mu        sync.RWMutex
	port      services.WatchlistServiceInterface
	navigator Navigator
	logger    providers.Logger
	state     State
	target    string
}

func NewStore(port services.WatchlistServiceInterface, navigator Navigator, logger providers.Logger) *Store {
	return &Store{
		port:      port,
		navigator: navigator,
		logger:    logger,
		state: State{
			Loading: true,
			Users:   []models.User{},
			Movies:  []models.Movie{},
		},
	}
}

// Init loads the snapshot. On failure the navigator is sent to the login
// route unless it is already there, and the error is returned.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	snapshot, err := s.port.GetSnapshot(ctx)

	s.mu.Lock()
	s.state.Loading = false
	if err == nil {
		s.replaceSnapshot(snapshot)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Init failed: %s", err)
		if s.navigator != nil && !strings.HasPrefix(s.navigator.CurrentRoute(), LoginRoute) {
			s.navigator.Redirect(LoginRoute)
		}
		return err
	}
	return nil
}

func (s *Store) SetGlobalQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.GlobalQuery = q
}

func (s *Store) SwitchUser(ctx context.Context) error {
	snapshot, err := s.port.SwitchUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSnapshot(snapshot)
	return nil
}

// CreateMovie rejects a blank title before reaching the port.
func (s *Store) CreateMovie(ctx context.Context, input models.CreateMovieInput) (models.Movie, error) {
	if err := input.Normalize().Validate(); err != nil {
		return models.Movie{}, err
	}

	movie, err := s.port.CreateMovie(ctx, input)
	if err != nil {
		return models.Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsert(movie)
	return movie.Clone(), nil
}

func (s *Store) UpdatePerUser(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (models.Movie, error) {
	movie, err := s.port.UpdatePerUser(ctx, movieID, userID, patch)
	if err != nil {
		return models.Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsert(movie)
	return movie.Clone(), nil
}

func (s *Store) DeleteMovie(ctx context.Context, movieID string) error {
	if err := s.port.DeleteMovie(ctx, movieID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.Movie, 0, len(s.state.Movies))
	for _, m := range s.state.Movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	s.state.Movies = kept
	return nil
}

// StatsFor always asks the port; the local list may lag behind.
func (s *Store) StatsFor(ctx context.Context, userID string) (models.Stats, error) {
	return s.port.StatsFor(ctx, userID)
}

// replaceSnapshot must be called with mu held.
func (s *Store) replaceSnapshot(snapshot models.Snapshot) {
	snapshot = snapshot.Clone()
	snapshot.Normalize()
	s.state.Users = snapshot.Users
	s.state.CurrentUserID = snapshot.CurrentUserID
	s.state.Movies = snapshot.Movies
}

// upsert replaces the movie with the same id in place, or prepends it.
// Must be called with mu held.
func (s *Store) upsert(movie models.Movie) {
	movie = movie.Clone()
	movie.EnsurePerUser(s.state.Users)
	for i := range s.state.Movies {
		if s.state.Movies[i].ID == movie.ID {
			next := append([]models.Movie(nil), s.state.Movies...)
			next[i] = movie
			s.state.Movies = next
			return
		}
	}
	s.state.Movies = append([]models.Movie{movie}, s.state.Movies...)
}
