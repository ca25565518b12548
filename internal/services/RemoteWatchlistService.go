package services

import (
	"context"
	"net/url"
	"watchlist/internal/httpclient"
	"watchlist/internal/models"
)

const (
	endpointMe     = "/me"
	endpointSwitch = "/me/switch"
	endpointMovies = "/movies"
	endpointUsers  = "/users"
	endpointLogin  = "/auth/login"
)

func moviePath(movieID string) string {
	return endpointMovies + "/" + url.PathEscape(movieID)
}

func moviePerUserPath(movieID, userID string) string {
	return moviePath(movieID) + "/users/" + url.PathEscape(userID)
}

func userStatsPath(userID string) string {
	return endpointUsers + "/" + url.PathEscape(userID) + "/stats"
}

// RemoteWatchlistService forwards every operation to a watchlist daemon.
type RemoteWatchlistService struct {
	client *httpclient.Client
}

func NewRemoteWatchlistService(client *httpclient.Client) *RemoteWatchlistService {
	return &RemoteWatchlistService{client: client}
}

func (r *RemoteWatchlistService) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := r.client.Get(ctx, endpointMe, &snapshot); err != nil {
		return models.Snapshot{}, err
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (r *RemoteWatchlistService) SwitchUser(ctx context.Context) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := r.client.Post(ctx, endpointSwitch, nil, &snapshot); err != nil {
		return models.Snapshot{}, err
	}
	snapshot.Normalize()
	return snapshot, nil
}

// CreateMovie and UpdatePerUser return the daemon's movie as sent. Missing
// per-user entries are filled when the state store merges the movie.
func (r *RemoteWatchlistService) CreateMovie(ctx context.Context, input models.CreateMovieInput) (models.Movie, error) {
	var movie models.Movie
	if err := r.client.Post(ctx, endpointMovies, input, &movie); err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

func (r *RemoteWatchlistService) UpdatePerUser(ctx context.Context, movieID, userID string, patch models.PerUserPatch) (models.Movie, error) {
	var movie models.Movie
	if err := r.client.Patch(ctx, moviePerUserPath(movieID, userID), patch, &movie); err != nil {
		return models.Movie{}, err
	}
	return movie, nil
}

func (r *RemoteWatchlistService) DeleteMovie(ctx context.Context, movieID string) error {
	return r.client.Delete(ctx, moviePath(movieID), nil)
}

func (r *RemoteWatchlistService) StatsFor(ctx context.Context, userID string) (models.Stats, error) {
	var stats models.Stats
	if err := r.client.Get(ctx, userStatsPath(userID), &stats); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Data    LoginResult `json:"data"`
}

// Login exchanges credentials for an access token. The caller stores it.
func (r *RemoteWatchlistService) Login(ctx context.Context, userID, password string) (LoginResult, error) {
	var res LoginResponse
	if err := r.client.Post(ctx, endpointLogin, LoginRequest{UserID: userID, Password: password}, &res); err != nil {
		return LoginResult{}, err
	}
	return res.Data, nil
}
