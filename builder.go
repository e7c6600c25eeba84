package goConsole

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OpenAdminHQ/goConsole/api"
	internalaudit "github.com/OpenAdminHQ/goConsole/internal/audit"
	"github.com/OpenAdminHQ/goConsole/storage"
)

// Builder defines a public type used by goConsole APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	cfg        Config
	httpClient *http.Client
	redis      redis.UniversalClient
	store      storage.Store
	auditSink  AuditSink
	built      bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		cfg: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL may return an error when input validation, dependency calls, or security checks fail.
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.cfg.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage may return an error when input validation, dependency calls, or security checks fail.
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.cfg.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.cfg.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.cfg.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	switch {
	case store != nil:
	case b.redis != nil:
		store = storage.NewRedisStore(b.redis, b.cfg.Storage.Prefix)
	default:
		store = storage.NewMemoryStore()
	}

	metrics := NewMetrics(b.cfg.Metrics)

	client := &Client{
		cfg:     b.cfg,
		store:   store,
		metrics: metrics,
		loading: true,
		subs:    make(map[int]func(Snapshot)),
	}

	httpClient := b.httpClient
	if httpClient == nil && b.cfg.API.RequestTimeout > 0 {
		httpClient = &http.Client{Timeout: b.cfg.API.RequestTimeout}
	}

	var observe func(time.Duration)
	if metrics.LatencyEnabled() {
		observe = func(d time.Duration) {
			metrics.Observe(MetricAPIRequestLatency, d)
		}
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    b.cfg.API.BaseURL,
		HTTPClient: httpClient,
		Tokens:     client,
		UserAgent:  b.cfg.API.UserAgent,
		Observe:    observe,
	})
	if err != nil {
		return nil, err
	}
	client.api = apiClient

	// Dropped audit events are counted by the dispatcher; log the first
	// drop so a saturated buffer is visible without flooding the log.
	var dropLogged sync.Once
	client.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    b.cfg.Audit.Enabled,
		BufferSize: b.cfg.Audit.BufferSize,
		DropIfFull: b.cfg.Audit.DropIfFull,
		OnDrop: func() {
			dropLogged.Do(func() {
				log.Print("goConsole: audit buffer full, dropping events")
			})
		},
	}, b.auditSink)

	return client, nil
}
