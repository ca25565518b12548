package providers

import (
	"net/http"
	"strings"
	"watchlist/internal/auth"
	"watchlist/internal/errors"
	"watchlist/internal/response"
	"watchlist/internal/structures"
)

// BearerAuthMiddleware requires a valid bearer token when auth is enabled and
// stores the token's user id in the request context.
func BearerAuthMiddleware(conf *structures.Config, logger Logger, next http.Handler) http.Handler {
	if !conf.Auth.Enabled {
		return next
	}
	secret := []byte(conf.Auth.Secret)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Error(w, errors.Unauthenticated("missing bearer token"))
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), secret)
		if err != nil {
			logger.Debugf(GetLogTypeByRequestType(r.Method), "Rejected token for %s %s: %s", r.Method, r.URL.Path, err)
			response.Error(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	})
}
