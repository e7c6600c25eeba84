package api

import (
	"context"
	"net/http"
	"net/url"
)

// Permission is the backend's permission resource. Name is always
// "<resource>.<action>".
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
}

// CreatePermissionRequest defines a public type used by goConsole APIs.
//
// CreatePermissionRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreatePermissionRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
}

// ListPermissions describes the listpermissions operation and its observable behavior.
//
// ListPermissions may return an error when input validation, dependency calls, or security checks fail.
// ListPermissions does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListPermissions(ctx context.Context, resource string) ([]Permission, error) {
	query := url.Values{}
	if resource != "" {
		query.Set("resource", resource)
	}

	var out []Permission
	if err := c.do(ctx, http.MethodGet, "/api/permissions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePermission describes the createpermission operation and its observable behavior.
//
// CreatePermission may return an error when input validation, dependency calls, or security checks fail.
// CreatePermission does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreatePermission(ctx context.Context, req CreatePermissionRequest) (*Permission, error) {
	var out Permission
	if err := c.do(ctx, http.MethodPost, "/api/permissions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
