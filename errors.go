package goConsole

import "errors"

var (
	// ErrClientNotReady is an exported constant or variable used by the console client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrInvalidCredentials is an exported constant or variable used by the console client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is an exported constant or variable used by the console client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRefreshTokenMissing is an exported constant or variable used by the console client.
	ErrRefreshTokenMissing = errors.New("refresh token missing")
	// ErrRefreshFailed is an exported constant or variable used by the console client.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrInvalidUserRecord is an exported constant or variable used by the console client.
	ErrInvalidUserRecord = errors.New("invalid user record")
)
