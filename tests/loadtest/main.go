// Command loadtest drives a running watchlist daemon with concurrent catalog
// traffic and prints per-endpoint latency percentiles.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

var (
	baseURL    = flag.String("url", "http://127.0.0.1:8080", "daemon base URL")
	token      = flag.String("token", "", "bearer token when auth is enabled")
	numWorkers = flag.Int("workers", 20, "concurrent workers")
	phaseLen   = flag.Duration("duration", 10*time.Second, "length of each phase")
)

var userIDs = []string{"u1", "u2"}
var tiers = []string{"S", "A", "B", "C", "D", ""}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// movieIDs collects ids created during the run so later phases can patch them.
type movieIDs struct {
	mu  sync.RWMutex
	ids []string
}

func (m *movieIDs) add(id string) {
	m.mu.Lock()
	m.ids = append(m.ids, id)
	m.mu.Unlock()
}

func (m *movieIDs) pick(rng *rand.Rand) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.ids) == 0 {
		return "", false
	}
	return m.ids[rng.Intn(len(m.ids))], true
}

func main() {
	flag.Parse()
	*baseURL = strings.TrimRight(*baseURL, "/")

	fmt.Println("=== Watchlist Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", *baseURL, *numWorkers, *phaseLen)

	fmt.Print("Waiting for daemon... ")
	if !waitReady(30, 200*time.Millisecond) {
		fmt.Println("FAILED: daemon not ready")
		return
	}
	fmt.Println("OK")

	ids := &movieIDs{}

	fmt.Println("\n--- Phase 1: Catalog growth (POST /movies) ---")
	runPhase(func(rng *rand.Rand) result {
		return doCreate(rng, ids)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% PATCH, 30% GET /me, 10% stats) ---")
	runPhase(func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doPatch(rng, ids)
		case r < 0.90:
			return doGetMe()
		default:
			return doStats(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (95% GET) ---")
	runPhase(func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doPatch(rng, ids)
		case r < 0.75:
			return doGetMe()
		default:
			return doStats(rng)
		}
	})
}

func waitReady(attempts int, pause time.Duration) bool {
	for i := 0; i < attempts; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(pause)
	}
	return false
}

func runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stopped := atomic.NewBool(false)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for !stopped.Load() {
				results <- workFn(rng)
			}
		}(time.Now().UnixNano() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.endpoint]
			if !ok {
				s = &stats{}
				all[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*phaseLen)
	stopped.Store(true)
	wg.Wait()
	close(results)
	<-done

	printResults(all, *phaseLen)
}

func printResults(all map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-36s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 100))

	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-36s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 100))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

// call sends one request and reports it under label. When out is non-nil a
// successful response body is decoded into it.
func call(label, method, path string, body any, wantStatus int, out any) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, *baseURL+path, reader)
	if err != nil {
		return result{endpoint: label, err: true}
	}
	req.Header.Set("Content-Type", "application/json")
	if *token != "" {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{label, lat, true}
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == wantStatus {
		if json.NewDecoder(resp.Body).Decode(out) != nil {
			return result{label, lat, true}
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return result{label, lat, resp.StatusCode != wantStatus}
}

func doCreate(rng *rand.Rand, ids *movieIDs) result {
	body := map[string]any{
		"title":    fmt.Sprintf("Load Movie %d", rng.Intn(1_000_000)),
		"year":     1950 + rng.Intn(75),
		"director": fmt.Sprintf("Director %d", rng.Intn(200)),
		"tier":     tiers[rng.Intn(len(tiers))],
		"favorite": rng.Float64() < 0.2,
		"seen":     rng.Float64() < 0.5,
	}
	var movie struct {
		ID string `json:"id"`
	}
	r := call("POST /movies", http.MethodPost, "/movies", body, http.StatusCreated, &movie)
	if !r.err && movie.ID != "" {
		ids.add(movie.ID)
	}
	return r
}

func doPatch(rng *rand.Rand, ids *movieIDs) result {
	id, ok := ids.pick(rng)
	if !ok {
		return doGetMe()
	}
	user := userIDs[rng.Intn(len(userIDs))]
	var patch map[string]any
	switch rng.Intn(3) {
	case 0:
		patch = map[string]any{"seen": rng.Intn(2) == 0}
	case 1:
		patch = map[string]any{"favorite": rng.Intn(2) == 0}
	default:
		patch = map[string]any{"tier": tiers[rng.Intn(len(tiers))]}
	}
	path := fmt.Sprintf("/movies/%s/users/%s", id, user)
	return call("PATCH /movies/{id}/users/{uid}", http.MethodPatch, path, patch, http.StatusOK, nil)
}

func doGetMe() result {
	return call("GET /me", http.MethodGet, "/me", nil, http.StatusOK, nil)
}

func doStats(rng *rand.Rand) result {
	user := userIDs[rng.Intn(len(userIDs))]
	return call("GET /users/{uid}/stats", http.MethodGet, "/users/"+user+"/stats", nil, http.StatusOK, nil)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
