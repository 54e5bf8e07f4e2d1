// Package identity authenticates the store admin.
package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/auth"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Try again later")
	ErrUnauthenticated    = shared.NewDomainError("UNAUTHORIZED", "Authentication required")
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // failed attempts before the login is locked
	LockDuration     time.Duration // how long a locked login stays locked
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

type loginFailures struct {
	count       int
	lockedUntil time.Time
}

// AuthService checks the configured admin credentials and manages tokens
type AuthService struct {
	admin       config.AdminConfig
	jwtService  *auth.JWTService
	revocations auth.Revocations
	config      AuthServiceConfig
	logger      *zap.Logger
	now         func() time.Time

	mu       sync.Mutex
	failures map[string]*loginFailures
}

// NewAuthService creates the admin auth service
func NewAuthService(
	admin config.AdminConfig,
	jwtService *auth.JWTService,
	revocations auth.Revocations,
	cfg AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if revocations == nil {
		revocations = auth.NewMemoryRevocations()
	}
	return &AuthService{
		admin:       admin,
		jwtService:  jwtService,
		revocations: revocations,
		config:      cfg,
		logger:      logger,
		now:         time.Now,
		failures:    make(map[string]*loginFailures),
	}
}

// Login verifies email and password and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Admin login attempt", zap.String("email", email))

	if s.locked(email) {
		s.logger.Warn("Login attempt for locked admin", zap.String("email", email))
		return nil, ErrAccountLocked
	}

	if s.admin.PasswordHash == "" || email != strings.ToLower(strings.TrimSpace(s.admin.Email)) ||
		bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password)) != nil {
		if s.recordFailure(email) {
			s.logger.Warn("Admin login locked after too many failed attempts",
				zap.String("email", email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, ErrAccountLocked
		}
		s.logger.Warn("Invalid admin credentials", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	s.clearFailures(email)

	token, err := s.jwtService.Issue(email)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("Admin logged in", zap.String("email", email))
	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Email:       email,
	}, nil
}

// Authenticate validates a bearer token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthenticated
	}
	return &Principal{Email: claims.Email, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the principal's token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	return s.revocations.Revoke(ctx, p.TokenID, p.ExpiresAt.Sub(s.now()))
}

func (s *AuthService) locked(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.failures[email]
	return ok && s.now().Before(f.lockedUntil)
}

// recordFailure counts a failed attempt and reports whether it locked the login
func (s *AuthService) recordFailure(email string) bool {
	if s.config.MaxLoginAttempts <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.failures[email]
	if !ok {
		f = &loginFailures{}
		s.failures[email] = f
	}
	f.count++
	if f.count >= s.config.MaxLoginAttempts {
		f.count = 0
		f.lockedUntil = s.now().Add(s.config.LockDuration)
		return true
	}
	return false
}

func (s *AuthService) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, email)
}
