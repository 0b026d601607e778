package identity

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CartHydrator is the slice of the cart service the session lifecycle needs
type CartHydrator interface {
	Hydrate(ctx context.Context, token string) error
	Reset(ctx context.Context)
}

// SessionFactory turns a token and role into a session, filling whatever
// the token reveals about its owner and expiry
type SessionFactory func(token string, role identity.Role) *identity.Session

func plainSession(token string, role identity.Role) *identity.Session {
	return &identity.Session{Token: token, Role: role}
}

// Option configures an AuthService
type Option func(*AuthService)

// WithSessionFactory sets how sessions are built from tokens
func WithSessionFactory(f SessionFactory) Option {
	return func(s *AuthService) {
		if f != nil {
			s.newSession = f
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *AuthService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		s.now = now
	}
}

// AuthService owns the signed-in session
type AuthService struct {
	gateway    identity.Gateway
	store      identity.SessionStore
	cart       CartHydrator
	newSession SessionFactory
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.RWMutex
	session *identity.Session
}

// NewAuthService creates a new AuthService. store and cart may be nil.
func NewAuthService(gateway identity.Gateway, store identity.SessionStore, cart CartHydrator, opts ...Option) *AuthService {
	s := &AuthService{
		gateway:    gateway,
		store:      store,
		cart:       cart,
		newSession: plainSession,
		validate:   newValidator(),
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type userLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userSignupInput struct {
	Name     string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginInput struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminSignupInput struct {
	Name     string `json:"username" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks that the form fields for the role and mode are filled in
func (s *AuthService) Validate(c identity.Credentials) error {
	var input any
	msg := "Please fill in all required fields."
	switch {
	case c.Role == identity.RoleAdmin && c.Mode == identity.ModeSignup:
		input = adminSignupInput{Name: strings.TrimSpace(c.Name), UserID: strings.TrimSpace(c.UserID), Password: c.Password}
	case c.Role == identity.RoleAdmin:
		input = adminLoginInput{UserID: strings.TrimSpace(c.UserID), Password: c.Password}
		msg = "Please fill in Admin ID and Password."
	case c.Mode == identity.ModeSignup:
		input = userSignupInput{Name: strings.TrimSpace(c.Name), Email: strings.TrimSpace(c.Email), Password: c.Password}
	default:
		input = userLoginInput{Email: strings.TrimSpace(c.Email), Password: c.Password}
		msg = "Please fill in Email and Password."
	}

	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
			}
		}
	}
	return shared.NewDomainError("VALIDATION_ERROR", msg)
}

// Login signs in or registers, persists the session and, for customers,
// loads the server cart. A failed cart load does not fail the login.
func (s *AuthService) Login(ctx context.Context, c identity.Credentials) (*identity.Session, error) {
	if c.Role == "" {
		c.Role = identity.RoleUser
	}
	if c.Mode == "" {
		c.Mode = identity.ModeLogin
	}
	if err := s.Validate(c); err != nil {
		return nil, err
	}

	result, err := s.gateway.Authenticate(ctx, c)
	if err != nil {
		return nil, err
	}

	sess := s.newSession(result.Token, result.Role)
	if s.store != nil {
		if err := s.store.Save(ctx, sess); err != nil {
			s.logger.Warn("failed to persist session", zap.Error(err))
		}
	}
	s.set(sess)
	s.logger.Info("logged in",
		zap.String("role", string(sess.Role)),
		zap.String("user_id", sess.UserID),
	)

	if sess.Role != identity.RoleAdmin && s.cart != nil {
		_ = s.cart.Hydrate(ctx, sess.Token)
	}
	return s.Session(), nil
}

// Restore loads the session saved by an earlier run. Expired tokens are
// discarded. Customer sessions get their server cart loaded.
func (s *AuthService) Restore(ctx context.Context) (*identity.Session, error) {
	if s.store == nil {
		return nil, nil
	}
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !sess.IsAuthenticated() {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		s.logger.Info("stored session expired", zap.Time("expires_at", sess.ExpiresAt))
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear expired session", zap.Error(err))
		}
		return nil, nil
	}

	s.set(sess)
	if sess.Role != identity.RoleAdmin && s.cart != nil {
		_ = s.cart.Hydrate(ctx, sess.Token)
	}
	return s.Session(), nil
}

// Logout forgets the session and empties the cart
func (s *AuthService) Logout(ctx context.Context) error {
	s.set(nil)
	if s.cart != nil {
		s.cart.Reset(ctx)
	}
	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}

// Session returns a copy of the current session, nil when signed out
func (s *AuthService) Session() *identity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// RequireAdmin guards the order board
func (s *AuthService) RequireAdmin() error {
	sess := s.Session()
	if !sess.IsAuthenticated() {
		return shared.ErrUnauthorized
	}
	if !sess.IsAdmin() {
		return shared.ErrForbidden
	}
	return nil
}

// RequireCustomer guards customer screens: a signed-in admin is sent to the
// board instead
func (s *AuthService) RequireCustomer() error {
	sess := s.Session()
	if !sess.IsAuthenticated() {
		return shared.ErrUnauthorized
	}
	if sess.IsAdmin() {
		return shared.ErrForbidden
	}
	return nil
}

func (s *AuthService) set(sess *identity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
}
