package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is an exported constant or variable used by the console client.
var ErrMalformed = errors.New("malformed access token")

// ExpiresAt decodes the expiry claim of a compact signed token without verifying
// its signature. A token with no expiry claim returns the zero time and no error.
func ExpiresAt(raw string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, errors.Join(ErrMalformed, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the token should be considered unusable at the given
// instant. Decode failures count as expired; a missing expiry claim does not.
func IsExpired(raw string, now time.Time) bool {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return true
	}
	if exp.IsZero() {
		return false
	}
	return !exp.After(now)
}
