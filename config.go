package goConsole

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by goConsole APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Storage StorageConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by goConsole APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goConsole APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RefreshInterval is the background renewal period. It must land safely
	// before TokenLifetime so the access token is replaced while still valid.
	RefreshInterval time.Duration
	// TokenLifetime is the backend's access-token TTL as configured there.
	// The client never enforces it; it only bounds RefreshInterval.
	TokenLifetime time.Duration
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by goConsole APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	Prefix string
}

// AuditConfig defines a public type used by goConsole APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goConsole APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			RequestTimeout: 15 * time.Second,
			UserAgent:      "goConsole/1.0",
		},
		Session: SessionConfig{
			RefreshInterval: 25 * time.Minute,
			TokenLifetime:   30 * time.Minute,
		},
		Storage: StorageConfig{
			Prefix: "gc",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL is required")
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return errors.New("API BaseURL is not a valid URL")
	}
	if c.API.RequestTimeout < 0 {
		return errors.New("API RequestTimeout must be >= 0")
	}

	// Session
	if c.Session.RefreshInterval <= 0 {
		return errors.New("Session RefreshInterval must be > 0")
	}
	if c.Session.TokenLifetime <= 0 {
		return errors.New("Session TokenLifetime must be > 0")
	}
	if c.Session.RefreshInterval >= c.Session.TokenLifetime {
		return errors.New("Session RefreshInterval must be < TokenLifetime")
	}

	// Storage
	if c.Storage.Prefix == "" {
		return errors.New("Storage Prefix is required")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
