package goConsole

import (
	"encoding/json"
	"io"

	"github.com/OpenAdminHQ/goConsole/authz"
	internalaudit "github.com/OpenAdminHQ/goConsole/internal/audit"
)

// RoleDescriptor is one role attached to a user record. The backend serves
// roles either as bare name strings or as {name, display_name} objects;
// both decode into this type.
type RoleDescriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// UnmarshalJSON describes the unmarshaljson operation and its observable behavior.
//
// UnmarshalJSON may return an error when input validation, dependency calls, or security checks fail.
// UnmarshalJSON does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *RoleDescriptor) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Name = name
		r.DisplayName = ""
		return nil
	}

	type plain RoleDescriptor
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = RoleDescriptor(obj)
	return nil
}

// UserRecord is the cached profile of the signed-in user, exactly as served
// by the login and me endpoints.
type UserRecord struct {
	ID          int64            `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	FullName    string           `json:"full_name,omitempty"`
	IsActive    bool             `json:"is_active"`
	Roles       []RoleDescriptor `json:"roles,omitempty"`
	Permissions []string         `json:"permissions,omitempty"`
}

// Subject returns the authorization view of the user. Nil-safe: a nil
// receiver yields a nil Subject, which fails every authz check.
func (u *UserRecord) Subject() *authz.Subject {
	if u == nil {
		return nil
	}

	roles := make([]authz.Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, authz.Role{Name: r.Name, DisplayName: r.DisplayName})
	}
	return &authz.Subject{
		Roles:       roles,
		Permissions: u.Permissions,
	}
}

// Snapshot is a point-in-time copy of the session state, safe to read from
// any goroutine. Authenticated holds exactly when both the user record and
// the access token are present.
type Snapshot struct {
	User          *UserRecord
	AccessToken   string
	Authenticated bool
	Loading       bool
}

// Subject returns the snapshot's authorization view, nil when signed out.
func (s Snapshot) Subject() *authz.Subject {
	return s.User.Subject()
}

// AuditEvent is a structured audit record emitted by the client.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
