package identity

import "context"

// Mode selects login or sign-up
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Credentials is what a login or sign-up form collects. Users are keyed by
// email, admins by an admin user ID.
type Credentials struct {
	Role     Role
	Mode     Mode
	Name     string
	Email    string
	UserID   string
	Password string
}

// AuthResult is the backend's answer to a login or registration
type AuthResult struct {
	Token string
	Role  Role
}

// Gateway is the remote authentication API
type Gateway interface {
	Authenticate(ctx context.Context, c Credentials) (*AuthResult, error)
}
