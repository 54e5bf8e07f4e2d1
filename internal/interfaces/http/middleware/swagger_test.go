package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func swaggerRouter(cfg SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func getDocs(router *gin.Engine, remoteAddr, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled docs are not found", func(t *testing.T) {
		rec := getDocs(swaggerRouter(SwaggerConfig{}), "10.0.0.1:1234", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "API documentation is not available")
	})

	t.Run("enabled without restrictions", func(t *testing.T) {
		rec := getDocs(swaggerRouter(SwaggerConfig{Enabled: true}), "203.0.113.9:1234", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "docs", rec.Body.String())
	})

	t.Run("allow list", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "bogus"}})

		assert.Equal(t, http.StatusOK, getDocs(router, "127.0.0.1:1234", "").Code)
		assert.Equal(t, http.StatusOK, getDocs(router, "10.20.30.40:1234", "").Code)
		assert.Equal(t, http.StatusForbidden, getDocs(router, "192.168.1.5:1234", "").Code)
	})

	t.Run("auth runs after the allow list", func(t *testing.T) {
		authn := new(mockAuthenticator)
		authn.On("Authenticate", mock.Anything, "good-token").Return(&identity.Principal{
			Email:     "admin@zuha.pk",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		authn.On("Authenticate", mock.Anything, "bad-token").Return(nil, identity.ErrUnauthenticated)

		router := swaggerRouter(SwaggerConfig{
			Enabled: true,
			Auth:    AdminAuth(AdminAuthConfig{Authenticator: authn}),
		})

		assert.Equal(t, http.StatusOK, getDocs(router, "10.0.0.1:1234", "good-token").Code)
		assert.Equal(t, http.StatusUnauthorized, getDocs(router, "10.0.0.1:1234", "bad-token").Code)
		assert.Equal(t, http.StatusUnauthorized, getDocs(router, "10.0.0.1:1234", "").Code)
	})
}
