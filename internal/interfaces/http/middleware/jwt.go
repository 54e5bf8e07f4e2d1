package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/identity"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	PrincipalKey  = "admin_principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator validates admin bearer tokens
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Principal, error)
}

// AdminAuthConfig holds configuration for the admin auth middleware
type AdminAuthConfig struct {
	Authenticator Authenticator
	// SkipPaths are full paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// AdminAuth requires a valid admin bearer token on every request not listed
// in SkipPaths.
func AdminAuth(cfg AdminAuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, nil, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, nil, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, cfg, nil, "Missing token")
			return
		}

		principal, err := cfg.Authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, identity.ErrUnauthenticated) {
				cfg.Logger.Error("Admin token check failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeServiceUnavailable, "Authentication is temporarily unavailable", GetRequestID(c)))
				return
			}
			abortUnauthorized(c, cfg, err, "Invalid or expired token")
			return
		}

		c.Set(PrincipalKey, principal)
		ctx := c.Request.Context()
		reqLogger := logger.FromContext(ctx).With(zap.String("admin", principal.Email))
		c.Request = c.Request.WithContext(logger.WithContext(ctx, reqLogger))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg AdminAuthConfig, err error, message string) {
	fields := []zap.Field{
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	cfg.Logger.Warn("Admin authentication failed", fields...)

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetPrincipal returns the admin set by AdminAuth, or nil
func GetPrincipal(c *gin.Context) *identity.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(*identity.Principal); ok {
			return p
		}
	}
	return nil
}
