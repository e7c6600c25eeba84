package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// User is the backend's user resource as served by the users endpoints.
type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	IsActive    bool     `json:"is_active"`
	Roles       []Role   `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// CreateUserRequest defines a public type used by goConsole APIs.
//
// CreateUserRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name,omitempty"`
	Password string  `json:"password"`
	RoleIDs  []int64 `json:"role_ids,omitempty"`
}

// UpdateUserRequest carries only the fields to change; nil pointers are
// omitted from the request body.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListUsers describes the listusers operation and its observable behavior.
//
// ListUsers may return an error when input validation, dependency calls, or security checks fail.
// ListUsers does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUsers(ctx context.Context, activeOnly bool) ([]User, error) {
	query := url.Values{}
	if activeOnly {
		query.Set("active_only", "true")
	}

	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser describes the getuser operation and its observable behavior.
//
// GetUser may return an error when input validation, dependency calls, or security checks fail.
// GetUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser describes the createuser operation and its observable behavior.
//
// CreateUser may return an error when input validation, dependency calls, or security checks fail.
// CreateUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser describes the updateuser operation and its observable behavior.
//
// UpdateUser may return an error when input validation, dependency calls, or security checks fail.
// UpdateUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, userPath(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser describes the deleteuser operation and its observable behavior.
//
// DeleteUser may return an error when input validation, dependency calls, or security checks fail.
// DeleteUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}

// AssignUserRoles replaces the user's role set with the given role IDs.
func (c *Client) AssignUserRoles(ctx context.Context, id int64, roleIDs []int64) error {
	body := struct {
		RoleIDs []int64 `json:"role_ids"`
	}{RoleIDs: roleIDs}

	return c.do(ctx, http.MethodPost, userPath(id)+"/roles", nil, body, nil)
}

// ListUserRoles describes the listuserroles operation and its observable behavior.
//
// ListUserRoles may return an error when input validation, dependency calls, or security checks fail.
// ListUserRoles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserRoles(ctx context.Context, id int64) ([]Role, error) {
	var out []Role
	if err := c.do(ctx, http.MethodGet, userPath(id)+"/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func userPath(id int64) string {
	return "/api/users/" + strconv.FormatInt(id, 10)
}
