package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/auth"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockRevocations struct {
	mock.Mock
}

func (m *MockRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *MockRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(t *testing.T, revocations auth.Revocations) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:         "test-secret-key-that-is-at-least-32-chars",
		Issuer:         "zuha-store",
		AccessTokenTTL: time.Hour,
	})
	return NewAuthService(
		config.AdminConfig{Email: "Admin@ZuhaSurgical.pk", PasswordHash: string(hash)},
		jwtService,
		revocations,
		AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: time.Minute},
		nil,
	)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc := newTestAuthService(t, nil)

		resp, err := svc.Login(ctx, LoginRequest{Email: " admin@zuhasurgical.pk ", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "admin@zuhasurgical.pk", resp.Email)

		p, err := svc.Authenticate(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin@zuhasurgical.pk", p.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestAuthService(t, nil)
		_, err := svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestAuthService(t, nil)
		_, err := svc.Login(ctx, LoginRequest{Email: "someone@zuhasurgical.pk", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("no password hash configured", func(t *testing.T) {
		svc := newTestAuthService(t, nil)
		svc.admin.PasswordHash = ""
		_, err := svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: ""})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("locks after repeated failures", func(t *testing.T) {
		svc := newTestAuthService(t, nil)
		now := time.Now()
		svc.now = func() time.Time { return now }
		bad := LoginRequest{Email: "admin@zuhasurgical.pk", Password: "nope"}

		_, err := svc.Login(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Login(ctx, bad)
		assert.ErrorIs(t, err, ErrAccountLocked)

		_, err = svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrAccountLocked)

		now = now.Add(2 * time.Minute)
		_, err = svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: "s3cret-pass"})
		assert.NoError(t, err)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid token", func(t *testing.T) {
		svc := newTestAuthService(t, nil)
		_, err := svc.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("revocation store failure", func(t *testing.T) {
		rev := new(MockRevocations)
		svc := newTestAuthService(t, rev)
		resp, err := svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: "s3cret-pass"})
		require.NoError(t, err)
		rev.On("IsRevoked", ctx, mock.Anything).Return(false, errors.New("redis down"))

		_, err = svc.Authenticate(ctx, resp.AccessToken)
		assert.EqualError(t, err, "redis down")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "admin@zuhasurgical.pk", Password: "s3cret-pass"})
	require.NoError(t, err)
	p, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, p))
	_, err = svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.ErrorIs(t, svc.Logout(ctx, nil), ErrUnauthenticated)
}
