package handler

import "time"

// LoginRequest is the login and sign-up form. Which fields are required
// depends on role and mode.
type LoginRequest struct {
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Mode     string `json:"mode" binding:"omitempty,oneof=login signup"`
	Name     string `json:"username"`
	Email    string `json:"email"`
	UserID   string `json:"userId"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse describes the signed-in session
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Role          string     `json:"role,omitempty"`
	UserID        string     `json:"userId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}
