package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthGateway_Endpoints(t *testing.T) {
	tests := []struct {
		name  string
		creds identity.Credentials
		path  string
		want  map[string]string
	}{
		{
			name:  "user login",
			creds: identity.Credentials{Role: identity.RoleUser, Mode: identity.ModeLogin, Email: " a@b.c ", Password: "pw"},
			path:  "/api/user/login",
			want:  map[string]string{"email": "a@b.c", "password": "pw"},
		},
		{
			name:  "user signup",
			creds: identity.Credentials{Role: identity.RoleUser, Mode: identity.ModeSignup, Name: "Asha", Email: "a@b.c", Password: "pw"},
			path:  "/api/user/register",
			want:  map[string]string{"username": "Asha", "email": "a@b.c", "password": "pw", "role": "user"},
		},
		{
			name:  "admin login",
			creds: identity.Credentials{Role: identity.RoleAdmin, Mode: identity.ModeLogin, UserID: "adm1", Password: "pw"},
			path:  "/api/admin/login",
			want:  map[string]string{"userId": "adm1", "password": "pw"},
		},
		{
			name:  "admin signup",
			creds: identity.Credentials{Role: identity.RoleAdmin, Mode: identity.ModeSignup, Name: "Boss", UserID: "adm1", Password: "pw"},
			path:  "/api/admin/register",
			want:  map[string]string{"name": "Boss", "userId": "adm1", "password": "pw", "role": "admin"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, tt.want, body)
				_, _ = w.Write([]byte(`{"success":true,"data":{"accessToken":"t"}}`))
			})
			res, err := NewAuthGateway(c).Authenticate(context.Background(), tt.creds)
			require.NoError(t, err)
			assert.Equal(t, "t", res.Token)
		})
	}
}

func TestAuthGateway_TokenAndRole(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		token string
		role  identity.Role
	}{
		{"data access token", `{"success":true,"data":{"accessToken":"a","role":"user"}}`, "a", identity.RoleUser},
		{"top level token", `{"success":true,"accessToken":"b","data":{}}`, "b", identity.RoleUser},
		{"data token", `{"success":true,"data":{"token":"c","role":"admin"}}`, "c", identity.RoleAdmin},
		{"admin flag", `{"success":true,"data":{"accessToken":"d","admin":true,"role":"user"}}`, "d", identity.RoleAdmin},
		{"admin document", `{"success":true,"data":{"accessToken":"e","admin":{"_id":"x"}}}`, "e", identity.RoleAdmin},
		{"admin false", `{"success":true,"data":{"accessToken":"f","admin":false}}`, "f", identity.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			res, err := NewAuthGateway(c).Authenticate(context.Background(), identity.Credentials{})
			require.NoError(t, err)
			assert.Equal(t, tt.token, res.Token)
			assert.Equal(t, tt.role, res.Role)
		})
	}
}

func TestAuthGateway_Failures(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
		})
		_, err := NewAuthGateway(c).Authenticate(context.Background(), identity.Credentials{})
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"User doesn't exist"}`))
		})
		_, err := NewAuthGateway(c).Authenticate(context.Background(), identity.Credentials{})
		require.Error(t, err)
		assert.Equal(t, "User doesn't exist", err.Error())
	})

	t.Run("unauthorized without message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := NewAuthGateway(c).Authenticate(context.Background(), identity.Credentials{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials.")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
