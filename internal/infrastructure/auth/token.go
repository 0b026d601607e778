// Package auth reads the backend's access tokens. Tokens are signed by the
// backend with a secret this client never holds, so they are decoded, not
// verified.
package auth

import (
	"errors"
	"time"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned for strings that are not JWTs
var ErrMalformedToken = errors.New("malformed access token")

// Claims are the fields the canteen backend puts into its tokens
type Claims struct {
	jwt.RegisteredClaims
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Admin  bool   `json:"admin,omitempty"`
}

// UserIdentifier returns the first user id found in the claims
func (c *Claims) UserIdentifier() string {
	switch {
	case c.ID != "":
		return c.ID
	case c.UserID != "":
		return c.UserID
	default:
		return c.Subject
	}
}

// Decode parses token claims without checking the signature
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims, nil
}

// NewSession builds a session from a login result. Opaque tokens that are
// not JWTs still yield a session, only without expiry and user id.
func NewSession(token string, role identity.Role) *identity.Session {
	s := &identity.Session{Token: token, Role: role}
	claims, err := Decode(token)
	if err != nil {
		return s
	}
	s.UserID = claims.UserIdentifier()
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// Expiry returns the token's expiry, or zero when it has none
func Expiry(token string) time.Time {
	claims, err := Decode(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
