package providers

import (
	"net/http"
	"watchlist/internal/structures"

	"github.com/go-chi/cors"
)

// NewCorsMiddleware lets browser front-ends on other origins call the API.
// With no configured origins it returns the handler unchanged.
func NewCorsMiddleware(conf *structures.Config) func(http.Handler) http.Handler {
	if len(conf.Cors.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   conf.Cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
