package controllers

import (
	"net/http"
	"watchlist/internal/auth"
	"watchlist/internal/errors"
	"watchlist/internal/providers"
	"watchlist/internal/response"
	"watchlist/internal/services"
	"watchlist/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const invalidCredentials = "invalid credentials"

type AuthController struct {
	conf    *structures.Config
	logger  providers.Logger
	service services.WatchlistServiceInterface
}

func NewAuthController(conf *structures.Config, logger providers.Logger, service services.WatchlistServiceInterface) *AuthController {
	return &AuthController{
		conf:    conf,
		logger:  logger,
		service: service,
	}
}

// Login issues a bearer token for a known user. The shared demo password is
// checked against auth.passwordHash; an empty hash skips the check.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if ac.conf.Auth.Secret == "" {
		response.Error(w, errors.Unavailable("login is disabled"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, errors.Validation("invalid request body"))
		return
	}
	v := validate.Struct(&req)
	if !v.Validate() {
		response.Error(w, errors.Validation(v.Errors.One()))
		return
	}

	snapshot, err := ac.service.GetSnapshot(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Login lookup failed: %s", err)
		response.Error(w, err)
		return
	}
	user, ok := snapshot.FindUser(req.UserID)
	if !ok {
		response.Error(w, errors.Unauthenticated(invalidCredentials))
		return
	}
	if err := auth.CheckPassword(ac.conf.Auth.PasswordHash, req.Password); err != nil {
		ac.logger.Warnf(providers.TypePost, "Failed login for %s from %s", req.UserID, r.RemoteAddr)
		response.Error(w, errors.Unauthenticated(invalidCredentials))
		return
	}

	token, err := auth.GenerateToken(user.ID, []byte(ac.conf.Auth.Secret), ac.conf.Auth.TokenTTL)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Token generation failed: %s", err)
		response.Error(w, err)
		return
	}

	ac.logger.Infof(providers.TypePost, "User %s logged in", user.ID)
	_ = response.JSON(w, http.StatusOK, services.LoginResponse{
		Success: true,
		Data:    services.LoginResult{AccessToken: token, User: user},
	})
}
