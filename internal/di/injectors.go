//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"watchlist/internal"
	"watchlist/internal/controllers"
	"watchlist/internal/providers"
	"watchlist/internal/services"
	"watchlist/internal/storage"
	"watchlist/internal/storage/interfaces"
	"watchlist/internal/structures"
)

var localServiceSet = wire.NewSet(
	storage.NewBlobStore,
	storage.NewZstdCompressor,
	storage.NewSnapshotCodec,
	services.NewLocalWatchlistService,
	wire.Bind(new(services.WatchlistServiceInterface), new(*services.LocalWatchlistService)),
	wire.Bind(new(interfaces.SnapshotImporter), new(*services.LocalWatchlistService)),
	wire.Bind(new(interfaces.SnapshotSource), new(*services.LocalWatchlistService)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRateLimiter,

		localServiceSet,
		storage.NewBackupManager,
		storage.NewScheduler,
		controllers.NewWatchlistController,
		controllers.NewAuthController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
