// Package tokeninfo decodes bearer token claims for display only.
//
// The signature is never verified: the backend is the only authority on
// whether a token is valid. Nothing here may be used to make an access
// decision.
package tokeninfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Info holds the informational claims of a token.
type Info struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasExpiry reports whether the token carries an exp claim.
func (i Info) HasExpiry() bool { return !i.ExpiresAt.IsZero() }

// Expired reports whether exp is at or before now.
func (i Info) Expired(now time.Time) bool {
	return i.HasExpiry() && !now.Before(i.ExpiresAt)
}

// Remaining returns the time left before exp, or zero when expired or
// without expiry.
func (i Info) Remaining(now time.Time) time.Duration {
	if !i.HasExpiry() || i.Expired(now) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

// Decode reads the registered claims of token without verifying it.
func Decode(token string) (Info, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Info{}, ErrOpaqueToken
		}
		return Info{}, fmt.Errorf("decode token claims: %w", err)
	}

	info := Info{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
