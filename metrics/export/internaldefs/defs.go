package internaldefs

import (
	goConsole "github.com/OpenAdminHQ/goConsole"
)

// CounterDef defines a public type used by goConsole APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goConsole.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goConsole APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goConsole.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the console client.
var CounterDefs = []CounterDef{
	{ID: goConsole.MetricLoginSuccess, Name: "goconsole_login_success_total", Help: "Successful login attempts."},
	{ID: goConsole.MetricLoginFailure, Name: "goconsole_login_failure_total", Help: "Failed login attempts."},
	{ID: goConsole.MetricRestoreHit, Name: "goconsole_restore_hit_total", Help: "Sessions restored from durable storage."},
	{ID: goConsole.MetricRestoreEmpty, Name: "goconsole_restore_empty_total", Help: "Restore attempts that found no stored session."},
	{ID: goConsole.MetricRestoreExpired, Name: "goconsole_restore_expired_total", Help: "Restore attempts that found an expired access token."},
	{ID: goConsole.MetricRestoreFailure, Name: "goconsole_restore_failure_total", Help: "Restore attempts that discarded the stored session."},
	{ID: goConsole.MetricRefreshSuccess, Name: "goconsole_refresh_success_total", Help: "Successful refresh operations."},
	{ID: goConsole.MetricRefreshFailure, Name: "goconsole_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: goConsole.MetricRenewalTick, Name: "goconsole_renewal_tick_total", Help: "Background renewal timer fires."},
	{ID: goConsole.MetricLogout, Name: "goconsole_logout_total", Help: "Logout operations."},
	{ID: goConsole.MetricLogoutNotifyFailure, Name: "goconsole_logout_notify_failure_total", Help: "Logout notifications the backend did not acknowledge."},
}

// HistogramDefs is an exported constant or variable used by the console client.
var HistogramDefs = []HistogramDef{
	{ID: goConsole.MetricAPIRequestLatency, Name: "goconsole_api_request_latency_seconds", Help: "API request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the console client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the console client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
