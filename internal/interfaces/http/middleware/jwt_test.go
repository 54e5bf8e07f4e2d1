package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/identity"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*identity.Principal, error) {
	args := m.Called(ctx, token)
	if p := args.Get(0); p != nil {
		return p.(*identity.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

func newAdminRouter(authn Authenticator, skip ...string) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AdminAuth(AdminAuthConfig{Authenticator: authn, SkipPaths: skip}))
	handler := func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"admin": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": p.Email})
	}
	router.GET("/admin/orders", handler)
	router.POST("/admin/auth/login", handler)
	return router
}

func TestAdminAuth_ValidToken(t *testing.T) {
	authn := new(mockAuthenticator)
	authn.On("Authenticate", mock.Anything, "good-token").Return(&identity.Principal{
		Email:     "admin@zuha.pk",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	newAdminRouter(authn).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@zuha.pk")
	authn.AssertExpectations(t)
}

func TestAdminAuth_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Missing authorization header"},
		{"wrong scheme", "Basic abc", "Invalid authorization header format"},
		{"empty token", "Bearer   ", "Missing token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := new(mockAuthenticator)

			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newAdminRouter(authn).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), dto.ErrCodeUnauthorized)
			assert.Contains(t, rec.Body.String(), tt.message)
			authn.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminAuth_InvalidToken(t *testing.T) {
	authn := new(mockAuthenticator)
	authn.On("Authenticate", mock.Anything, "revoked").Return(nil, identity.ErrUnauthenticated)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	rec := httptest.NewRecorder()
	newAdminRouter(authn).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAdminAuth_BackendFailure(t *testing.T) {
	authn := new(mockAuthenticator)
	authn.On("Authenticate", mock.Anything, "tok").Return(nil, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	newAdminRouter(authn).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), dto.ErrCodeServiceUnavailable)
}

func TestAdminAuth_SkipPaths(t *testing.T) {
	authn := new(mockAuthenticator)

	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(authn, "/admin/auth/login").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	authn.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestGetPrincipal_NotFound(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetPrincipal(c))

	c.Set(PrincipalKey, "not a principal")
	assert.Nil(t, GetPrincipal(c))
}
