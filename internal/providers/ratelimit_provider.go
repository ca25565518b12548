package providers

import (
	"net"
	"net/http"
	"sync"
	"time"
	"watchlist/internal/structures"

	"golang.org/x/time/rate"
)

type RateLimiterInterface interface {
	Allow(key string) bool
}

// KeyedRateLimiter keeps one token bucket per key (client address).
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(conf *structures.Config) RateLimiterInterface {
	if conf.RateLimit.LoginRPS <= 0 {
		return &noopLimiter{}
	}
	return &KeyedRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(conf.RateLimit.LoginRPS),
		burst:    max(conf.RateLimit.LoginBurst, 1),
		idleTTL:  10 * time.Minute,
	}
}

func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	now := time.Now()
	e, ok := krl.limiters[key]
	if !ok {
		krl.evictIdle(now)
		e = &limiterEntry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// evictIdle drops buckets unused for idleTTL. Caller holds mu.
func (krl *KeyedRateLimiter) evictIdle(now time.Time) {
	for k, e := range krl.limiters {
		if now.Sub(e.lastSeen) > krl.idleTTL {
			delete(krl.limiters, k)
		}
	}
}

type noopLimiter struct{}

func (n *noopLimiter) Allow(_ string) bool { return true }

// RateLimitMiddleware rejects requests over the per-address limit with 429.
func RateLimitMiddleware(limiter RateLimiterInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientAddr(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
