package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is an exported constant or variable used by the console client.
var ErrUnavailable = errors.New("storage unavailable")

// Logical key names for the persisted session triple.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Credentials is the persisted session triple. Absent values are empty.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	User         []byte
}

// Store persists the session triple. Save and Clear write the whole group
// atomically; SetAccessToken replaces only the access token, which is the
// silent-refresh write path.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	SetAccessToken(ctx context.Context, accessToken string) error
	Clear(ctx context.Context) error
}
