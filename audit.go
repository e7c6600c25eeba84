package goConsole

import (
	"context"
	"errors"
	"time"

	"github.com/OpenAdminHQ/goConsole/api"
	"github.com/OpenAdminHQ/goConsole/storage"
)

/*
====================================
AUDIT EVENT TYPES
====================================
*/

const (
	auditEventLoginSuccess        = "login_success"
	auditEventLoginFailure        = "login_failure"
	auditEventSessionRestored     = "session_restored"
	auditEventRestoreEmpty        = "restore_empty"
	auditEventRestoreExpired      = "restore_expired"
	auditEventRestoreFailure      = "restore_failure"
	auditEventRefreshSuccess      = "refresh_success"
	auditEventRefreshFailure      = "refresh_failure"
	auditEventLogout              = "logout"
	auditEventLogoutNotifyFailure = "logout_notify_failure"
)

/*
====================================
ERROR CODES
====================================
*/

// AuditErrorCode defines a public type used by goConsole APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	// AuditErrorInvalidCredentials is an exported constant or variable used by the console client.
	AuditErrorInvalidCredentials AuditErrorCode = "invalid_credentials"
	// AuditErrorRefreshTokenMissing is an exported constant or variable used by the console client.
	AuditErrorRefreshTokenMissing AuditErrorCode = "refresh_token_missing"
	// AuditErrorRefreshFailed is an exported constant or variable used by the console client.
	AuditErrorRefreshFailed AuditErrorCode = "refresh_failed"
	// AuditErrorNotAuthenticated is an exported constant or variable used by the console client.
	AuditErrorNotAuthenticated AuditErrorCode = "not_authenticated"
	// AuditErrorStorageUnavailable is an exported constant or variable used by the console client.
	AuditErrorStorageUnavailable AuditErrorCode = "storage_unavailable"
	// AuditErrorBackend is an exported constant or variable used by the console client.
	AuditErrorBackend AuditErrorCode = "backend_error"
	// AuditErrorInvalidUserRecord is an exported constant or variable used by the console client.
	AuditErrorInvalidUserRecord AuditErrorCode = "invalid_user_record"
	// AuditErrorInternal is an exported constant or variable used by the console client.
	AuditErrorInternal AuditErrorCode = "internal_error"
)

func auditErrorCode(err error) AuditErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return AuditErrorInvalidCredentials
	case errors.Is(err, ErrRefreshTokenMissing):
		return AuditErrorRefreshTokenMissing
	case errors.Is(err, ErrRefreshFailed):
		return AuditErrorRefreshFailed
	case errors.Is(err, ErrNotAuthenticated):
		return AuditErrorNotAuthenticated
	case errors.Is(err, ErrInvalidUserRecord):
		return AuditErrorInvalidUserRecord
	case errors.Is(err, storage.ErrUnavailable):
		return AuditErrorStorageUnavailable
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return AuditErrorBackend
	}

	return AuditErrorInternal
}

/*
====================================
EMISSION
====================================
*/

// emitAudit sends one event through the dispatcher. It is a no-op when audit
// is disabled. metadata is only built when the event will actually be emitted.
func (c *Client) emitAudit(ctx context.Context, eventType string, success bool, userID, username string, err error, metadata func() map[string]string) {
	if c == nil || c.audit == nil {
		return
	}

	e := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Username:  username,
		Success:   success,
	}
	if err != nil {
		e.Error = string(auditErrorCode(err))
	}
	if metadata != nil {
		e.Metadata = metadata()
	}

	c.audit.Emit(ctx, e)
}
