package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/hmehmood121/ZuhaSurgical/docs"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/identity"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/handler"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const validToken = "valid-admin-token"

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*identity.Principal, error) {
	if token != validToken {
		return nil, identity.ErrUnauthenticated
	}
	return &identity.Principal{Email: "admin@zuhasurgical.pk", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// handlers wires every handler without services. Tests only exercise paths
// that stop before a service call.
func handlers() Handlers {
	return Handlers{
		Storefront:    handler.NewStorefrontHandler(nil, nil),
		Cart:          handler.NewCartHandler(nil, nil),
		Checkout:      handler.NewCheckoutHandler(nil),
		Content:       handler.NewContentHandler(nil),
		Tracking:      handler.NewTrackingHandler(nil),
		Auth:          handler.NewAuthHandler(nil),
		ProductAdmin:  handler.NewProductAdminHandler(nil),
		CategoryAdmin: handler.NewCategoryAdminHandler(nil),
		OrderAdmin:    handler.NewOrderAdminHandler(nil),
		Uploads:       handler.NewUploadHandler(nil),
		System:        handler.NewSystemHandler("zuha-store", "test"),
	}
}

func storeEngine(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	if cfg.Authenticator == nil {
		cfg.Authenticator = stubAuthenticator{}
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = 1 << 10
	}
	if cfg.MaxUploadSize == 0 {
		cfg.MaxUploadSize = 1 << 20
	}
	cfg.CartSession = middleware.DefaultCartSessionConfig()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	Setup(engine, handlers(), cfg)
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(
		NewDomainGroup("a", "/a").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "a") }),
		NewDomainGroup("b", "/b").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "b") }),
	)
	assert.Len(t, r.registrars, 2)
	r.Setup()

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/api/v1/b/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		NewDomainGroup("items", "/items").
			GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok).
			RegisterRoutes(engine.Group("/api"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/items"},
			{http.MethodPost, "/api/items"},
			{http.MethodPut, "/api/items/1"},
			{http.MethodPatch, "/api/items/1"},
			{http.MethodDelete, "/api/items/1"},
		} {
			w := serve(engine, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, tc.method)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("middleware applies to subgroups", func(t *testing.T) {
		engine := gin.New()
		var calls []string
		mark := func(name string) gin.HandlerFunc {
			return func(c *gin.Context) {
				calls = append(calls, name)
				c.Next()
			}
		}

		g := NewDomainGroup("admin", "/admin").Use(mark("auth"))
		g.Group("orders", "/orders").Use(mark("limit")).GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		g.RegisterRoutes(engine.Group(""))

		w := serve(engine, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"auth", "limit"}, calls)
	})
}

func TestSetup_RouteTable(t *testing.T) {
	engine := storeEngine(t, Config{})

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /api/v1/products",
		"GET /api/v1/products/:slug",
		"GET /api/v1/categories",
		"GET /api/v1/categories/:slug/products",
		"GET /api/v1/banners",
		"GET /api/v1/announcements",
		"POST /api/v1/contact",
		"GET /api/v1/cart",
		"DELETE /api/v1/cart",
		"POST /api/v1/cart/items",
		"PUT /api/v1/cart/items/:key",
		"DELETE /api/v1/cart/items/:key",
		"POST /api/v1/cart/buy-now",
		"GET /api/v1/checkout",
		"POST /api/v1/checkout",
		"GET /api/v1/orders/:orderId/summary",
		"POST /api/v1/tracking/events",
		"POST /api/v1/admin/auth/login",
		"POST /api/v1/admin/auth/logout",
		"GET /api/v1/admin/auth/me",
		"PATCH /api/v1/admin/products/:id/status",
		"DELETE /api/v1/admin/categories/:id",
		"PUT /api/v1/admin/announcements/:id",
		"GET /api/v1/admin/contacts",
		"GET /api/v1/admin/orders",
		"PATCH /api/v1/admin/orders/:orderId/status",
		"GET /api/v1/admin/orders/:orderId/slip",
		"GET /api/v1/admin/dashboard",
		"POST /api/v1/admin/uploads",
		"POST /api/v1/admin/uploads/presign",
		"GET /api/v1/system/info",
		"GET /api/v1/system/ping",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestSetup_UnknownRoute(t *testing.T) {
	engine := storeEngine(t, Config{})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))
}

func TestSetup_HealthAndSystem(t *testing.T) {
	engine := storeEngine(t, Config{})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.CartSessionHeader))
}

func TestSetup_Swagger(t *testing.T) {
	t.Run("hidden unless enabled", func(t *testing.T) {
		engine := storeEngine(t, Config{})

		w := serve(engine, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))
	})

	t.Run("serves the UI and the document", func(t *testing.T) {
		engine := storeEngine(t, Config{Swagger: middleware.SwaggerConfig{Enabled: true}})

		w := serve(engine, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(engine, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var doc struct {
			BasePath string                    `json:"basePath"`
			Paths    map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "/api/v1", doc.BasePath)
		assert.Contains(t, doc.Paths["/cart/items"], "post")
		assert.Contains(t, doc.Paths["/checkout"], "post")
	})

	t.Run("admin token when required", func(t *testing.T) {
		engine := storeEngine(t, Config{Swagger: middleware.SwaggerConfig{
			Enabled: true,
			Auth:    middleware.AdminAuth(middleware.AdminAuthConfig{Authenticator: stubAuthenticator{}}),
		}})

		w := serve(engine, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		assert.Equal(t, http.StatusOK, serve(engine, req).Code)
	})
}

func TestSetup_StorefrontCarriesCartSession(t *testing.T) {
	engine := storeEngine(t, Config{})

	w := serve(engine, jsonRequest(http.MethodPost, "/api/v1/tracking/events", `{`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.CartSessionHeader))

	req := jsonRequest(http.MethodPost, "/api/v1/tracking/events", `{`)
	req.Header.Set(middleware.CartSessionHeader, "session-1")
	w = serve(engine, req)
	assert.Equal(t, "session-1", w.Header().Get(middleware.CartSessionHeader))
}

func TestSetup_StorefrontBodyLimit(t *testing.T) {
	engine := storeEngine(t, Config{MaxBodySize: 64})

	body := `{"productId":"` + strings.Repeat("x", 128) + `"}`
	w := serve(engine, jsonRequest(http.MethodPost, "/api/v1/cart/items", body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodePayloadTooLarge, errorCode(t, w))
}

func TestSetup_AdminRequiresToken(t *testing.T) {
	engine := storeEngine(t, Config{})

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "forged", http.StatusUnauthorized},
		{"valid token", validToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := serve(engine, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSetup_LoginSkipsAuthAndIsThrottled(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	engine := storeEngine(t, Config{LoginLimiter: limiter})

	// Malformed JSON stops in the handler, which proves auth was skipped
	w := serve(engine, jsonRequest(http.MethodPost, "/api/v1/admin/auth/login", `{`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, errorCode(t, w))

	w = serve(engine, jsonRequest(http.MethodPost, "/api/v1/admin/auth/login", `{`))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSetup_UploadsUseTheUploadLimit(t *testing.T) {
	engine := storeEngine(t, Config{MaxBodySize: 256, MaxUploadSize: 1 << 20})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("prefix", strings.Repeat("p", 2048)))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+validToken)
	w := serve(engine, req)

	// Past the body limit; the handler rejects the missing file
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine(EngineConfig{
		CORS:     middleware.DefaultCORSConfig(),
		Security: middleware.DefaultSecurityConfig(),
		Tracing:  middleware.TracingConfig{Enabled: false},
	})
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	engine.GET("/boom", func(*gin.Context) { panic("boom") })
	w = serve(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
