package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Export formats accepted by the backend.
const (
	ExportCSV  = "csv"
	ExportJSON = "json"
	ExportXLSX = "xlsx"
)

// ErrInvalidExportFormat is an exported constant or variable used by the console client.
var ErrInvalidExportFormat = errors.New("invalid export format")

// LogEntry is one audit-log row from the backend.
type LogEntry struct {
	ID        int64             `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Severity  string            `json:"severity"`
	Action    string            `json:"action"`
	Username  string            `json:"username"`
	Module    string            `json:"module"`
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// LogQuery is the filter set for log listing and export. Zero values are
// omitted from the request.
type LogQuery struct {
	Severity string
	Action   string
	Username string
	Module   string
	Status   string
	Days     int
	Skip     int
	Limit    int
}

func (q LogQuery) values() url.Values {
	query := url.Values{}
	if q.Severity != "" {
		query.Set("severity", q.Severity)
	}
	if q.Action != "" {
		query.Set("action", q.Action)
	}
	if q.Username != "" {
		query.Set("username", q.Username)
	}
	if q.Module != "" {
		query.Set("module", q.Module)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.Days > 0 {
		query.Set("days", strconv.Itoa(q.Days))
	}
	if q.Skip > 0 {
		query.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	return query
}

// LogStats is the aggregate view served by the log stats endpoint.
type LogStats struct {
	Total      int64            `json:"total"`
	BySeverity map[string]int64 `json:"by_severity"`
	ByModule   map[string]int64 `json:"by_module"`
	ByStatus   map[string]int64 `json:"by_status"`
}

// CreateLogRequest defines a public type used by goConsole APIs.
//
// CreateLogRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreateLogRequest struct {
	Severity string            `json:"severity"`
	Action   string            `json:"action"`
	Module   string            `json:"module"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// ListLogs describes the listlogs operation and its observable behavior.
//
// ListLogs may return an error when input validation, dependency calls, or security checks fail.
// ListLogs does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListLogs(ctx context.Context, q LogQuery) ([]LogEntry, error) {
	var out []LogEntry
	if err := c.do(ctx, http.MethodGet, "/api/logs", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogStats describes the logstats operation and its observable behavior.
//
// LogStats may return an error when input validation, dependency calls, or security checks fail.
// LogStats does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) LogStats(ctx context.Context, days int) (*LogStats, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var out LogStats
	if err := c.do(ctx, http.MethodGet, "/api/logs/stats", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportLogs returns the export file verbatim; formatting is entirely the
// backend's concern.
func (c *Client) ExportLogs(ctx context.Context, format string, q LogQuery) ([]byte, error) {
	switch format {
	case ExportCSV, ExportJSON, ExportXLSX:
		// valid
	default:
		return nil, ErrInvalidExportFormat
	}

	query := q.values()
	query.Set("format", format)
	return c.raw(ctx, http.MethodGet, "/api/logs/export", query, nil)
}

// CreateLog describes the createlog operation and its observable behavior.
//
// CreateLog may return an error when input validation, dependency calls, or security checks fail.
// CreateLog does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateLog(ctx context.Context, req CreateLogRequest) error {
	return c.do(ctx, http.MethodPost, "/api/logs", nil, req, nil)
}
