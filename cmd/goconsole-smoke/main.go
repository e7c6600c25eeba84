package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goConsole "github.com/OpenAdminHQ/goConsole"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		workers   = flag.Int("workers", 32, "number of concurrent session clients")
		ops       = flag.Int("ops", 10000, "operations per phase (login + refresh + restore)")
		redisAddr = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix    = flag.String("prefix", "gc-smoke", "storage key prefix")
		lifetime  = flag.Duration("token-lifetime", 30*time.Minute, "access token lifetime issued by the stub backend")
	)
	flag.Parse()

	if *workers <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "workers and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	backend := newStubBackend(*lifetime)
	server := httptest.NewServer(backend)
	defer server.Close()
	fmt.Printf("stub backend at %s\n", server.URL)

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	clients := make([]*goConsole.Client, *workers)
	for w := 0; w < *workers; w++ {
		c, err := buildClient(server.URL, client, workerPrefix(*prefix, w), *lifetime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "build client: %v\n", err)
			os.Exit(1)
		}
		clients[w] = c
	}
	defer func() {
		for _, c := range clients {
			c.Close()
		}
	}()

	loginStats := runPhase(*ops, *workers, func(worker, _ int) error {
		_, err := clients[worker].Login(ctx, fmt.Sprintf("user-%d", worker), "secret")
		return err
	})

	refreshStats := runPhase(*ops, *workers, func(worker, _ int) error {
		return clients[worker].Refresh(ctx)
	})

	restoreStats := runPhase(*ops, *workers, func(worker, _ int) error {
		c, err := buildClient(server.URL, client, workerPrefix(*prefix, worker), *lifetime)
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.Restore(ctx); err != nil {
			return err
		}
		if !c.IsAuthenticated() {
			return fmt.Errorf("restore did not recover the session")
		}
		return nil
	})

	fmt.Println("---- results ----")
	printStats("login", loginStats)
	printStats("refresh", refreshStats)
	printStats("restore", restoreStats)
	printCounters(clients)
}

func workerPrefix(prefix string, worker int) string {
	return fmt.Sprintf("%s-%d", prefix, worker)
}

func buildClient(baseURL string, rdb redis.UniversalClient, prefix string, lifetime time.Duration) (*goConsole.Client, error) {
	cfg := goConsole.Config{
		API: goConsole.APIConfig{
			BaseURL:        baseURL,
			RequestTimeout: 10 * time.Second,
			UserAgent:      "goconsole-smoke/1.0",
		},
		Session: goConsole.SessionConfig{
			RefreshInterval: lifetime / 2,
			TokenLifetime:   lifetime,
		},
		Storage: goConsole.StorageConfig{Prefix: prefix},
		Metrics: goConsole.MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
	return goConsole.New().
		WithConfig(cfg).
		WithRedis(rdb).
		Build()
}

func runPhase(ops, concurrency int, op func(worker, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(worker, i)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func printCounters(clients []*goConsole.Client) {
	totals := map[goConsole.MetricID]uint64{}
	for _, c := range clients {
		for id, v := range c.MetricsSnapshot().Counters {
			totals[id] += v
		}
	}
	fmt.Printf("counters: login_success=%d refresh_success=%d restore_hit=%d refresh_failure=%d restore_failure=%d\n",
		totals[goConsole.MetricLoginSuccess],
		totals[goConsole.MetricRefreshSuccess],
		totals[goConsole.MetricRestoreHit],
		totals[goConsole.MetricRefreshFailure],
		totals[goConsole.MetricRestoreFailure],
	)
}

/*
====================================
STUB BACKEND
====================================
*/

type stubBackend struct {
	mux      *http.ServeMux
	lifetime time.Duration
	refreshN atomic.Int64
}

func newStubBackend(lifetime time.Duration) *stubBackend {
	b := &stubBackend{
		mux:      http.NewServeMux(),
		lifetime: lifetime,
	}
	b.mux.HandleFunc("/api/auth/login", b.handleLogin)
	b.mux.HandleFunc("/api/auth/refresh", b.handleRefresh)
	b.mux.HandleFunc("/api/auth/logout", b.handleLogout)
	return b
}

func (b *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func (b *stubBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, `{"detail":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]any{
		"access_token":  b.mintToken(),
		"refresh_token": "refresh-" + req.Username,
		"token_type":    "bearer",
		"expires_in":    int64(b.lifetime.Seconds()),
		"user": map[string]any{
			"id":          1,
			"username":    req.Username,
			"email":       req.Username + "@example.com",
			"is_active":   true,
			"roles":       []string{"admin"},
			"permissions": []string{"dashboard.read", "users.read"},
		},
	})
}

func (b *stubBackend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, `{"detail":"invalid refresh token"}`, http.StatusUnauthorized)
		return
	}
	b.refreshN.Add(1)

	writeJSON(w, map[string]any{
		"access_token": b.mintToken(),
		"token_type":   "bearer",
		"expires_in":   int64(b.lifetime.Seconds()),
	})
}

func (b *stubBackend) handleLogout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// mintToken builds an unsigned JWT carrying only an expiry claim. The client
// never verifies signatures, so a placeholder signature part is enough.
func (b *stubBackend) mintToken() string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]any{
		"exp": time.Now().Add(b.lifetime).Unix(),
		"sub": "1",
	})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".x"
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
