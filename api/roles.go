package api

import (
	"context"
	"net/http"
	"strconv"
)

// Role is the backend's role resource.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// CreateRoleRequest defines a public type used by goConsole APIs.
//
// CreateRoleRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// UpdateRoleRequest carries only the fields to change.
type UpdateRoleRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListRoles describes the listroles operation and its observable behavior.
//
// ListRoles may return an error when input validation, dependency calls, or security checks fail.
// ListRoles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	if err := c.do(ctx, http.MethodGet, "/api/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRole describes the getrole operation and its observable behavior.
//
// GetRole may return an error when input validation, dependency calls, or security checks fail.
// GetRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetRole(ctx context.Context, id int64) (*Role, error) {
	var out Role
	if err := c.do(ctx, http.MethodGet, rolePath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole describes the createrole operation and its observable behavior.
//
// CreateRole may return an error when input validation, dependency calls, or security checks fail.
// CreateRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	var out Role
	if err := c.do(ctx, http.MethodPost, "/api/roles", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole describes the updaterole operation and its observable behavior.
//
// UpdateRole may return an error when input validation, dependency calls, or security checks fail.
// UpdateRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) (*Role, error) {
	var out Role
	if err := c.do(ctx, http.MethodPut, rolePath(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole describes the deleterole operation and its observable behavior.
//
// DeleteRole may return an error when input validation, dependency calls, or security checks fail.
// DeleteRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, rolePath(id), nil, nil, nil)
}

// AssignRolePermissions replaces the role's permission set with the given
// permission IDs.
func (c *Client) AssignRolePermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	body := struct {
		PermissionIDs []int64 `json:"permission_ids"`
	}{PermissionIDs: permissionIDs}

	return c.do(ctx, http.MethodPost, rolePath(id)+"/permissions", nil, body, nil)
}

func rolePath(id int64) string {
	return "/api/roles/" + strconv.FormatInt(id, 10)
}
