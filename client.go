package goConsole

import (
	"sync"

	"github.com/OpenAdminHQ/goConsole/api"
	internalaudit "github.com/OpenAdminHQ/goConsole/internal/audit"
	"github.com/OpenAdminHQ/goConsole/storage"
)

// Client defines a public type used by goConsole APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	cfg     Config
	api     *api.Client
	store   storage.Store
	audit   *internalaudit.Dispatcher
	metrics *Metrics

	mu           sync.Mutex
	user         *UserRecord
	accessToken  string
	refreshToken string
	loading      bool

	// generation increments whenever the session identity changes (adopt or
	// logout). In-flight refreshes compare it to discard superseded results.
	generation uint64

	renewalStop chan struct{}

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// API describes the api operation and its observable behavior.
//
// API may return an error when input validation, dependency calls, or security checks fail.
// API does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) API() *api.Client {
	if c == nil {
		return nil
	}
	return c.api
}

// Store describes the store operation and its observable behavior.
//
// Store may return an error when input validation, dependency calls, or security checks fail.
// Store does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Store() storage.Store {
	if c == nil {
		return nil
	}
	return c.store
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.stopRenewal()
	c.mu.Unlock()

	c.audit.Close()
}

func (c *Client) metricInc(id MetricID) {
	c.metrics.Inc(id)
}
