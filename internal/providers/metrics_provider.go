package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
	"watchlist/internal/models"
	"watchlist/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(op string, duration time.Duration)
	IncMutations(op string, err error)
	SetCatalogSize(count int)
	SetUserStats(userID string, stats models.Stats)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	mutationsTotal      *prometheus.CounterVec
	moviesTotal         prometheus.Gauge
	userMovies          *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncMutations(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mutationsTotal.WithLabelValues(op, outcome).Inc()
}

func (m *MetricsProvider) SetCatalogSize(count int) {
	m.moviesTotal.Set(float64(count))
}

func (m *MetricsProvider) SetUserStats(userID string, stats models.Stats) {
	m.userMovies.WithLabelValues(userID, "seen").Set(float64(stats.Seen))
	m.userMovies.WithLabelValues(userID, "favorite").Set(float64(stats.Fav))
	m.userMovies.WithLabelValues(userID, "tier_s").Set(float64(stats.TierS))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "watchlist_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "watchlist_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "watchlist_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "watchlist_persistence_duration_seconds",
			Help:    "Duration of blob load/save operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		mutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watchlist_mutations_total",
			Help: "Total number of catalog mutations by operation and outcome",
		}, []string{"op", "outcome"}),

		moviesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "watchlist_movies_total",
			Help: "Number of movies in the shared catalog",
		}),

		userMovies: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "watchlist_user_movies",
			Help: "Per-user movie counts by kind",
		}, []string{"user", "kind"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncMutations(_ string, _ error)                       {}
func (n *noopMetrics) SetCatalogSize(_ int)                                 {}
func (n *noopMetrics) SetUserStats(_ string, _ models.Stats)                {}
