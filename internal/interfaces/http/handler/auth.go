package handler

import (
	identityapp "github.com/canteen/client/internal/application/identity"
	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler signs the kiosk in and out
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toSessionResponse(s *identity.Session) SessionResponse {
	if !s.IsAuthenticated() {
		return SessionResponse{}
	}
	resp := SessionResponse{
		Authenticated: true,
		Role:          string(s.Role),
		UserID:        s.UserID,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}

// Login godoc
// @Summary      Log in or sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=SessionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	sess, err := h.authService.Login(c.Request.Context(), identity.Credentials{
		Role:     identity.ParseRole(req.Role),
		Mode:     identity.Mode(req.Mode),
		Name:     req.Name,
		Email:    req.Email,
		UserID:   req.UserID,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, toSessionResponse(sess), "Logged in as "+string(sess.Role))
}

// Logout forgets the session and empties the cart
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SessionResponse{})
}

// Session reports the current session
func (h *AuthHandler) Session(c *gin.Context) {
	h.Success(c, toSessionResponse(h.authService.Session()))
}
