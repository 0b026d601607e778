package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("kitchen"))
}

func TestSession(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAuthenticated())
	assert.False(t, nilSession.IsAdmin())

	s := &Session{Token: "t", Role: RoleAdmin}
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	s.Role = RoleUser
	assert.False(t, s.IsAdmin())

	assert.False(t, (&Session{Token: ""}).IsAuthenticated())
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.False(t, (&Session{Token: "t"}).Expired(now), "unknown expiry never expires")
	assert.True(t, (&Session{Token: "t", ExpiresAt: now}).Expired(now))
	assert.False(t, (&Session{Token: "t", ExpiresAt: now.Add(time.Minute)}).Expired(now))
}
