package auth

import (
	"testing"
	"time"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		ID:               "665f",
	})

	claims, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "665f", claims.UserIdentifier())
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))
}

func TestDecode_Expired(t *testing.T) {
	token := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		UserID:           "u1",
	})

	claims, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserIdentifier())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.True(t, Expiry("not-a-jwt").IsZero())
}

func TestNewSession(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := sign(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp), Subject: "sub-1"},
	})

	s := NewSession(token, identity.RoleAdmin)
	assert.Equal(t, token, s.Token)
	assert.Equal(t, identity.RoleAdmin, s.Role)
	assert.Equal(t, "sub-1", s.UserID)
	assert.True(t, exp.Equal(s.ExpiresAt))
	assert.False(t, s.Expired(time.Now()))

	opaque := NewSession("opaque", identity.RoleUser)
	assert.True(t, opaque.IsAuthenticated())
	assert.True(t, opaque.ExpiresAt.IsZero())
}
