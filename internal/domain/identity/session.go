package identity

import (
	"context"
	"strings"
	"time"
)

// Role decides which screens a session may reach
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored or remote role string, defaulting to user
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// Session is an authenticated backend session
type Session struct {
	Token     string
	Role      Role
	UserID    string
	ExpiresAt time.Time
}

// IsAuthenticated reports whether a token is present
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the session may use the admin board
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == RoleAdmin
}

// Expired reports whether the token has a known expiry before now
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// SessionStore persists the session between runs
type SessionStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
