package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGateway is a mock implementation of identity.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Authenticate(ctx context.Context, c identity.Credentials) (*identity.AuthResult, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

// MockSessionStore is a mock implementation of identity.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load(ctx context.Context) (*identity.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, s *identity.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCart is a mock implementation of CartHydrator
type MockCart struct {
	mock.Mock
}

func (m *MockCart) Hydrate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCart) Reset(ctx context.Context) {
	m.Called(ctx)
}

func userCreds() identity.Credentials {
	return identity.Credentials{Role: identity.RoleUser, Mode: identity.ModeLogin, Email: "asha@campus.edu", Password: "secret"}
}

func TestAuthService_Validate(t *testing.T) {
	svc := NewAuthService(new(MockGateway), nil, nil)

	tests := []struct {
		name    string
		creds   identity.Credentials
		wantErr string
	}{
		{"user login ok", userCreds(), ""},
		{"user login missing password", identity.Credentials{Email: "a@b.co"}, "Please fill in Email and Password."},
		{"user login bad email", identity.Credentials{Email: "not-an-email", Password: "x"}, "Invalid email format"},
		{"user signup missing name", identity.Credentials{Mode: identity.ModeSignup, Email: "a@b.co", Password: "x"}, "Please fill in all required fields."},
		{"admin login missing id", identity.Credentials{Role: identity.RoleAdmin, Password: "x"}, "Please fill in Admin ID and Password."},
		{"admin signup ok", identity.Credentials{Role: identity.RoleAdmin, Mode: identity.ModeSignup, Name: "Chef", UserID: "k1", Password: "x"}, ""},
		{"whitespace only is missing", identity.Credentials{Role: identity.RoleAdmin, UserID: "  ", Password: "x"}, "Please fill in Admin ID and Password."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.creds)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("user login saves session and hydrates cart", func(t *testing.T) {
		gw, store, cart := new(MockGateway), new(MockSessionStore), new(MockCart)
		gw.On("Authenticate", ctx, userCreds()).Return(&identity.AuthResult{Token: "tok", Role: identity.RoleUser}, nil)
		store.On("Save", ctx, &identity.Session{Token: "tok", Role: identity.RoleUser}).Return(nil)
		cart.On("Hydrate", ctx, "tok").Return(nil)
		svc := NewAuthService(gw, store, cart)

		sess, err := svc.Login(ctx, userCreds())
		require.NoError(t, err)
		assert.Equal(t, "tok", sess.Token)
		assert.NoError(t, svc.RequireCustomer())
		assert.ErrorIs(t, svc.RequireAdmin(), shared.ErrForbidden)
		store.AssertExpectations(t)
		cart.AssertExpectations(t)
	})

	t.Run("admin login skips hydration", func(t *testing.T) {
		creds := identity.Credentials{Role: identity.RoleAdmin, UserID: "k1", Password: "x"}
		gw, cart := new(MockGateway), new(MockCart)
		gw.On("Authenticate", ctx, identity.Credentials{Role: identity.RoleAdmin, Mode: identity.ModeLogin, UserID: "k1", Password: "x"}).
			Return(&identity.AuthResult{Token: "adm", Role: identity.RoleAdmin}, nil)
		svc := NewAuthService(gw, nil, cart)

		_, err := svc.Login(ctx, creds)
		require.NoError(t, err)
		assert.NoError(t, svc.RequireAdmin())
		assert.ErrorIs(t, svc.RequireCustomer(), shared.ErrForbidden)
		cart.AssertNotCalled(t, "Hydrate", mock.Anything, mock.Anything)
	})

	t.Run("hydration failure does not fail login", func(t *testing.T) {
		gw, cart := new(MockGateway), new(MockCart)
		gw.On("Authenticate", ctx, userCreds()).Return(&identity.AuthResult{Token: "tok", Role: identity.RoleUser}, nil)
		cart.On("Hydrate", ctx, "tok").Return(errors.New("offline"))
		svc := NewAuthService(gw, nil, cart)

		_, err := svc.Login(ctx, userCreds())
		assert.NoError(t, err)
	})

	t.Run("gateway failure leaves signed out", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("Authenticate", ctx, userCreds()).Return(nil, shared.ErrUnauthorized)
		svc := NewAuthService(gw, nil, nil)

		_, err := svc.Login(ctx, userCreds())
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		assert.Nil(t, svc.Session())
		assert.ErrorIs(t, svc.RequireAdmin(), shared.ErrUnauthorized)
	})

	t.Run("session factory fills claims", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("Authenticate", ctx, userCreds()).Return(&identity.AuthResult{Token: "tok", Role: identity.RoleUser}, nil)
		svc := NewAuthService(gw, nil, nil, WithSessionFactory(func(token string, role identity.Role) *identity.Session {
			return &identity.Session{Token: token, Role: role, UserID: "u-9"}
		}))

		sess, err := svc.Login(ctx, userCreds())
		require.NoError(t, err)
		assert.Equal(t, "u-9", sess.UserID)
	})
}

func TestAuthService_Restore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := WithClock(func() time.Time { return now })

	t.Run("valid session is restored", func(t *testing.T) {
		store, cart := new(MockSessionStore), new(MockCart)
		store.On("Load", ctx).Return(&identity.Session{Token: "tok", Role: identity.RoleUser, ExpiresAt: now.Add(time.Hour)}, nil)
		cart.On("Hydrate", ctx, "tok").Return(nil)
		svc := NewAuthService(new(MockGateway), store, cart, clock)

		sess, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", sess.Token)
	})

	t.Run("expired session is discarded", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("Load", ctx).Return(&identity.Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}, nil)
		store.On("Clear", ctx).Return(nil)
		svc := NewAuthService(new(MockGateway), store, nil, clock)

		sess, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)
		assert.Nil(t, svc.Session())
		store.AssertCalled(t, "Clear", ctx)
	})

	t.Run("nothing stored", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("Load", ctx).Return(nil, nil)
		svc := NewAuthService(new(MockGateway), store, nil)

		sess, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	gw, store, cart := new(MockGateway), new(MockSessionStore), new(MockCart)
	gw.On("Authenticate", ctx, userCreds()).Return(&identity.AuthResult{Token: "tok", Role: identity.RoleUser}, nil)
	store.On("Save", ctx, mock.Anything).Return(nil)
	store.On("Clear", ctx).Return(nil)
	cart.On("Hydrate", ctx, "tok").Return(nil)
	cart.On("Reset", ctx).Return()
	svc := NewAuthService(gw, store, cart)

	_, err := svc.Login(ctx, userCreds())
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.Nil(t, svc.Session())
	cart.AssertCalled(t, "Reset", ctx)
	store.AssertCalled(t, "Clear", ctx)
}
