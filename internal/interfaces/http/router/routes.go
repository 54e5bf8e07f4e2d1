package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/handler"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// multipartOverhead is added to the upload limit for form boundaries and
// the prefix field.
const multipartOverhead = 64 << 10

// LoginPath is the admin login route relative to the API base path
const LoginPath = "/admin/auth/login"

// Handlers holds every HTTP handler the store serves
type Handlers struct {
	Storefront    *handler.StorefrontHandler
	Cart          *handler.CartHandler
	Checkout      *handler.CheckoutHandler
	Content       *handler.ContentHandler
	Tracking      *handler.TrackingHandler
	Auth          *handler.AuthHandler
	ProductAdmin  *handler.ProductAdminHandler
	CategoryAdmin *handler.CategoryAdminHandler
	OrderAdmin    *handler.OrderAdminHandler
	Uploads       *handler.UploadHandler
	System        *handler.SystemHandler
}

// Config controls the middleware attached to each route group
type Config struct {
	APIVersion    string
	Authenticator middleware.Authenticator
	CartSession   middleware.CartSessionConfig
	MaxBodySize   int64
	MaxUploadSize int64
	// Nil limiters leave the route unthrottled
	LoginLimiter   *middleware.RateLimiter
	ContactLimiter *middleware.RateLimiter
	Swagger        middleware.SwaggerConfig
	Logger         *zap.Logger
}

// Setup registers the whole store API on engine: /health, /swagger, the
// storefront and admin groups under /api/<version>, system routes and a
// JSON 404.
func Setup(engine *gin.Engine, h Handlers, cfg Config) *Router {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion(cfg.APIVersion))
	r.Register(
		StorefrontRoutes(h, cfg),
		AdminRoutes(r.BasePath(), h, cfg),
		SystemRoutes(h.System),
	)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	return r
}

// StorefrontRoutes are the shopper facing routes. Every request carries a
// cart session.
func StorefrontRoutes(h Handlers, cfg Config) *DomainGroup {
	shop := NewDomainGroup("storefront", "").
		Use(
			middleware.CartSession(cfg.CartSession),
			middleware.TracingAttributeInjector(),
			middleware.BodyLimit(cfg.MaxBodySize),
		)

	shop.GET("/products", h.Storefront.ListProducts).
		GET("/products/:slug", h.Storefront.GetProduct).
		GET("/categories", h.Storefront.ListCategories).
		GET("/categories/:slug/products", h.Storefront.CategoryProducts)

	shop.GET("/banners", h.Content.ListBanners).
		GET("/announcements", h.Content.ActiveAnnouncements).
		POST("/contact", throttled(cfg.ContactLimiter, h.Content.SubmitContact)...)

	shop.GET("/cart", h.Cart.Get).
		DELETE("/cart", h.Cart.Clear).
		POST("/cart/items", h.Cart.AddItem).
		PUT("/cart/items/:key", h.Cart.UpdateQuantity).
		DELETE("/cart/items/:key", h.Cart.RemoveItem).
		POST("/cart/buy-now", h.Cart.BuyNow)

	shop.GET("/checkout", h.Checkout.Begin).
		POST("/checkout", h.Checkout.PlaceOrder).
		GET("/orders/:orderId/summary", h.Checkout.Summary)

	shop.POST("/tracking/events", h.Tracking.Track)
	return shop
}

// AdminRoutes are the dashboard routes. All but login require a bearer
// token. basePath is the API prefix the group is mounted under.
func AdminRoutes(basePath string, h Handlers, cfg Config) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").
		Use(
			middleware.TracingAttributeInjector(),
			middleware.AdminAuth(middleware.AdminAuthConfig{
				Authenticator: cfg.Authenticator,
				SkipPaths:     []string{basePath + LoginPath},
				Logger:        cfg.Logger,
			}),
		)

	api := admin.Group("admin-api", "").Use(middleware.BodyLimit(cfg.MaxBodySize))

	api.POST("/auth/login", throttled(cfg.LoginLimiter, h.Auth.Login)...).
		POST("/auth/logout", h.Auth.Logout).
		GET("/auth/me", h.Auth.Me)

	api.GET("/products", h.ProductAdmin.List).
		POST("/products", h.ProductAdmin.Create).
		GET("/products/:id", h.ProductAdmin.Get).
		PUT("/products/:id", h.ProductAdmin.Update).
		PATCH("/products/:id/status", h.ProductAdmin.SetStatus).
		DELETE("/products/:id", h.ProductAdmin.Delete)

	api.GET("/categories", h.CategoryAdmin.List).
		POST("/categories", h.CategoryAdmin.Create).
		GET("/categories/:id", h.CategoryAdmin.Get).
		PUT("/categories/:id", h.CategoryAdmin.Update).
		DELETE("/categories/:id", h.CategoryAdmin.Delete)

	api.GET("/banners", h.Content.ListBanners).
		POST("/banners", h.Content.CreateBanner).
		DELETE("/banners/:id", h.Content.DeleteBanner)

	api.GET("/announcements", h.Content.ListAnnouncements).
		POST("/announcements", h.Content.CreateAnnouncement).
		PUT("/announcements/:id", h.Content.UpdateAnnouncement).
		DELETE("/announcements/:id", h.Content.DeleteAnnouncement)

	api.GET("/contacts", h.Content.ListContacts).
		PUT("/contacts/:id", h.Content.UpdateContact).
		DELETE("/contacts/:id", h.Content.DeleteContact)

	api.GET("/orders", h.OrderAdmin.List).
		GET("/orders/:orderId", h.OrderAdmin.Get).
		PATCH("/orders/:orderId/status", h.OrderAdmin.UpdateStatus).
		PUT("/orders/:orderId/customer", h.OrderAdmin.UpdateCustomer).
		DELETE("/orders/:orderId", h.OrderAdmin.Delete).
		GET("/orders/:orderId/slip", h.OrderAdmin.Slip).
		GET("/dashboard", h.OrderAdmin.Dashboard)

	admin.Group("uploads", "/uploads").
		Use(middleware.BodyLimit(cfg.MaxUploadSize+multipartOverhead)).
		POST("", h.Uploads.Upload).
		POST("/presign", h.Uploads.Presign)

	return admin
}

// SystemRoutes are unauthenticated service checks
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo).
		GET("/ping", h.Ping)
}

func throttled(limiter *middleware.RateLimiter, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{middleware.RateLimit(limiter), h}
}
