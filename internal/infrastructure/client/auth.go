package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/canteen/client/internal/domain/identity"
)

// ErrMissingToken is returned when a login succeeds without a token
var ErrMissingToken = &APIError{Message: "Login successful, but the access token is missing."}

// AuthGateway logs users and admins in against the backend
type AuthGateway struct {
	c *Client
}

// NewAuthGateway creates an auth gateway on the backend client
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

type authPayload struct {
	AccessToken string          `json:"accessToken"`
	Token       string          `json:"token"`
	Admin       json.RawMessage `json:"admin"`
	Role        string          `json:"role"`
}

type authResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	AccessToken string      `json:"accessToken"`
	Data        authPayload `json:"data"`
}

// endpoint picks the route and body for the credential's role and mode
func endpoint(c identity.Credentials) (string, any) {
	admin := c.Role == identity.RoleAdmin
	signup := c.Mode == identity.ModeSignup
	switch {
	case admin && signup:
		return "/api/admin/register", map[string]string{
			"name":     strings.TrimSpace(c.Name),
			"userId":   strings.TrimSpace(c.UserID),
			"password": c.Password,
			"role":     string(identity.RoleAdmin),
		}
	case admin:
		return "/api/admin/login", map[string]string{
			"userId":   strings.TrimSpace(c.UserID),
			"password": c.Password,
		}
	case signup:
		return "/api/user/register", map[string]string{
			"username": strings.TrimSpace(c.Name),
			"email":    strings.TrimSpace(c.Email),
			"password": c.Password,
			"role":     string(identity.RoleUser),
		}
	default:
		return "/api/user/login", map[string]string{
			"email":    strings.TrimSpace(c.Email),
			"password": c.Password,
		}
	}
}

// Authenticate logs in or registers and returns token and role
func (g *AuthGateway) Authenticate(ctx context.Context, c identity.Credentials) (*identity.AuthResult, error) {
	path, body := endpoint(c)
	resp, err := g.c.Post(ctx, path, body, nil)
	if err != nil {
		return nil, err
	}

	var out authResponse
	decodeErr := resp.Decode(&out)
	if !resp.OK() {
		msg := out.Message
		if msg == "" {
			if resp.StatusCode == http.StatusUnauthorized {
				msg = "Invalid credentials."
			} else {
				msg = "Something went wrong."
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Request failed."
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	token := firstNonEmpty(out.Data.AccessToken, out.AccessToken, out.Data.Token)
	if token == "" {
		return nil, ErrMissingToken
	}
	role := identity.ParseRole(out.Data.Role)
	if truthy(out.Data.Admin) {
		role = identity.RoleAdmin
	}
	return &identity.AuthResult{Token: token, Role: role}, nil
}

// truthy follows JSON truthiness: absent, null, false, 0 and "" are false
func truthy(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
