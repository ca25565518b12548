package internal

import (
	"net/http"
	"watchlist/internal/controllers"
	"watchlist/internal/providers"
	"watchlist/internal/structures"
)

func InitRoutes(
	watchlistController *controllers.WatchlistController,
	authController *controllers.AuthController,
	conf *structures.Config,
	logger providers.Logger,
	limiter providers.RateLimiterInterface,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	protected := func(h http.HandlerFunc) http.Handler {
		return providers.BearerAuthMiddleware(conf, logger, h)
	}

	routers.Post("/auth/login", providers.RateLimitMiddleware(limiter, http.HandlerFunc(authController.Login)))

	routers.Get("/me", protected(watchlistController.GetMe))
	routers.Post("/me/switch", protected(watchlistController.SwitchUser))
	routers.Post("/movies", protected(watchlistController.CreateMovie))
	routers.Delete("/movies/{movieId}", protected(watchlistController.DeleteMovie))
	routers.Patch("/movies/{movieId}/users/{userId}", protected(watchlistController.UpdatePerUser))
	routers.Get("/users/{userId}/stats", protected(watchlistController.GetUserStats))
	return routers
}
