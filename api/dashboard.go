package api

import (
	"context"
	"net/http"
)

// DashboardSummary is the aggregate card data for the console landing page.
type DashboardSummary struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	TotalRoles  int64 `json:"total_roles"`
	LogsToday   int64 `json:"logs_today"`
}

// DashboardSummary describes the dashboardsummary operation and its observable behavior.
//
// DashboardSummary may return an error when input validation, dependency calls, or security checks fail.
// DashboardSummary does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether the backend answers its liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}
