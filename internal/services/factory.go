package services

import (
	"strings"
	"watchlist/internal/httpclient"
	"watchlist/internal/providers"
	"watchlist/internal/session"
	"watchlist/internal/storage"
	"watchlist/internal/structures"
)

// IsRemote reports whether a non-blank remote base URL is configured.
func IsRemote(conf *structures.Config) bool {
	return strings.TrimSpace(conf.Remote.BaseURL) != ""
}

// NewWatchlistService picks the backend once: remote when a base URL is
// configured, the local blob store otherwise.
func NewWatchlistService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (WatchlistServiceInterface, func(), error) {
	if IsRemote(conf) {
		baseURL := strings.TrimSpace(conf.Remote.BaseURL)
		logger.Debugf(providers.TypeApp, "Using remote backend %s", baseURL)
		client := httpclient.New(baseURL, conf.Remote.Timeout, session.NewFileTokenStore(conf.Remote.TokenFile))
		return NewRemoteWatchlistService(client), func() {}, nil
	}

	store, closeStore, err := storage.NewBlobStore(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	compressor, err := storage.NewZstdCompressor()
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	codec := storage.NewSnapshotCodec(compressor)

	cleanup := func() {
		codec.Close()
		closeStore()
	}
	return NewLocalWatchlistService(conf, store, codec, logger, metrics), cleanup, nil
}
