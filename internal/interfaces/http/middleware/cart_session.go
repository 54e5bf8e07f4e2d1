package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
)

// Cart session keys
const (
	CartSessionKey    = "cart_session"
	CartSessionHeader = "X-Cart-Session"
	CartSessionCookie = "cart_session"
)

// maxCartSessionLength bounds client-supplied session ids
const maxCartSessionLength = 128

// CartSessionConfig configures the cart session cookie
type CartSessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// DefaultCartSessionConfig returns a 30 day cookie named cart_session
func DefaultCartSessionConfig() CartSessionConfig {
	return CartSessionConfig{
		CookieName: CartSessionCookie,
		MaxAge:     30 * 24 * time.Hour,
	}
}

// CartSession resolves the shopper's cart session from the X-Cart-Session
// header or the session cookie. A request without one gets a new uuid, set
// as a cookie and echoed in the response header.
func CartSession(cfg CartSessionConfig) gin.HandlerFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = CartSessionCookie
	}

	return func(c *gin.Context) {
		sessionID := c.GetHeader(CartSessionHeader)
		if sessionID == "" {
			sessionID, _ = c.Cookie(cfg.CookieName)
		}
		if len(sessionID) > maxCartSessionLength {
			sessionID = ""
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sessionID, int(cfg.MaxAge.Seconds()), "/", "", cfg.Secure, true)
		}

		c.Set(CartSessionKey, sessionID)
		c.Writer.Header().Set(CartSessionHeader, sessionID)
		ctx := c.Request.Context()
		ctx, _ = logger.WithSessionID(ctx, logger.FromContext(ctx), sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetCartSession returns the session resolved by CartSession
func GetCartSession(c *gin.Context) string {
	return c.GetString(CartSessionKey)
}
