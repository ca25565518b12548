package controllers

import (
	"net/http"
	"sync"
	"watchlist/internal/errors"
	"watchlist/internal/models"
	"watchlist/internal/providers"
	"watchlist/internal/response"
	"watchlist/internal/services"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const (
	cacheKeyMe          = "me"
	cacheKeyStatsPrefix = "stats:"
)

type WatchlistController struct {
	logger  providers.Logger
	service services.WatchlistServiceInterface
	cache   providers.CacheProviderInterface

	// generation counts mutations; cacheMu orders cache fills against Clear.
	generation atomic.Uint64
	cacheMu    sync.Mutex
}

func NewWatchlistController(logger providers.Logger, service services.WatchlistServiceInterface, cache providers.CacheProviderInterface) *WatchlistController {
	return &WatchlistController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// fail writes the error envelope. Codeless and unavailable errors are logged.
func (wc *WatchlistController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch errors.CodeOf(err) {
	case errors.CodeInternal, errors.CodeUnavailable:
		wc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	default:
		wc.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	}
	response.Error(w, err)
}

func (wc *WatchlistController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := wc.cache.Get(cacheKey); ok {
		response.Raw(w, http.StatusOK, data)
		return
	}

	gen := wc.generation.Load()
	result, err := compute()
	if err != nil {
		wc.fail(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		wc.fail(w, r, err)
		return
	}

	wc.storeIfCurrent(cacheKey, gson, gen)
	response.Raw(w, http.StatusOK, gson)
}

func (wc *WatchlistController) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Validation("invalid request body")
	}
	return nil
}

// storeIfCurrent caches a computed read unless a mutation finished while it
// was being computed.
func (wc *WatchlistController) storeIfCurrent(cacheKey string, data []byte, gen uint64) {
	wc.cacheMu.Lock()
	defer wc.cacheMu.Unlock()
	if wc.generation.Load() != gen {
		return
	}
	wc.cache.Set(cacheKey, data)
}

// mutated drops every cached read after a successful write.
func (wc *WatchlistController) mutated() {
	wc.cacheMu.Lock()
	defer wc.cacheMu.Unlock()
	wc.generation.Inc()
	wc.cache.Clear()
}

func (wc *WatchlistController) GetMe(w http.ResponseWriter, r *http.Request) {
	wc.serveFromCacheOrCompute(w, r, cacheKeyMe, func() (any, error) {
		return wc.service.GetSnapshot(r.Context())
	})
}

func (wc *WatchlistController) SwitchUser(w http.ResponseWriter, r *http.Request) {
	snapshot, err := wc.service.SwitchUser(r.Context())
	if err != nil {
		wc.fail(w, r, err)
		return
	}
	wc.mutated()
	_ = response.JSON(w, http.StatusOK, snapshot)
}

func (wc *WatchlistController) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input models.CreateMovieInput
	if err := wc.decode(w, r, &input); err != nil {
		wc.fail(w, r, err)
		return
	}

	movie, err := wc.service.CreateMovie(r.Context(), input)
	if err != nil {
		wc.fail(w, r, err)
		return
	}
	wc.mutated()
	_ = response.JSON(w, http.StatusCreated, movie)
}

func (wc *WatchlistController) UpdatePerUser(w http.ResponseWriter, r *http.Request) {
	var patch models.PerUserPatch
	if err := wc.decode(w, r, &patch); err != nil {
		wc.fail(w, r, err)
		return
	}

	movie, err := wc.service.UpdatePerUser(r.Context(), r.PathValue("movieId"), r.PathValue("userId"), patch)
	if err != nil {
		wc.fail(w, r, err)
		return
	}
	wc.mutated()
	_ = response.JSON(w, http.StatusOK, movie)
}

func (wc *WatchlistController) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := wc.service.DeleteMovie(r.Context(), r.PathValue("movieId")); err != nil {
		wc.fail(w, r, err)
		return
	}
	wc.mutated()
	response.NoContent(w)
}

func (wc *WatchlistController) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	wc.serveFromCacheOrCompute(w, r, cacheKeyStatsPrefix+userID, func() (any, error) {
		return wc.service.StatsFor(r.Context(), userID)
	})
}
