package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appcart "github.com/hmehmood121/ZuhaSurgical/internal/application/cart"
	catalogapp "github.com/hmehmood121/ZuhaSurgical/internal/application/catalog"
	checkoutapp "github.com/hmehmood121/ZuhaSurgical/internal/application/checkout"
	contentapp "github.com/hmehmood121/ZuhaSurgical/internal/application/content"
	orderapp "github.com/hmehmood121/ZuhaSurgical/internal/application/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/cache"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/event"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/persistence"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/printing"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type stubNotifier struct {
	err error
}

func (n stubNotifier) OrderConfirmation(context.Context, *order.Order) error { return n.err }
func (n stubNotifier) OrderNotification(context.Context, *order.Order) error { return n.err }

// storeEnv is a fully wired storefront over an in-memory database
type storeEnv struct {
	engine     *gin.Engine
	products   *catalogapp.ProductService
	categories *catalogapp.CategoryService
	carts      *appcart.Service
	orders     *orderapp.Service
}

func newStoreEnv(t *testing.T) *storeEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(persistence.Models()...))

	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	tracker := tracking.NewService(nil, "PKR")
	bus := event.NewInMemoryEventBus(zap.NewNop())

	store := cache.NewMemoryCartStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	carts, err := appcart.NewService(store, cart.DefaultDeliveryPolicy())
	require.NoError(t, err)

	env := &storeEnv{
		engine:     gin.New(),
		products:   catalogapp.NewProductService(productRepo, categoryRepo),
		categories: catalogapp.NewCategoryService(categoryRepo, productRepo),
		carts:      carts,
		orders: orderapp.NewService(orderRepo, productRepo, categoryRepo, bus,
			printing.NewSlipRenderer("PKR", printing.Seller{Name: "Zuha Surgical"}), nil, nil),
	}

	storefront := NewStorefrontHandler(catalogapp.NewStorefrontService(productRepo, categoryRepo), tracker)
	cartHandler := NewCartHandler(carts, appcart.NewShop(carts, productRepo, tracker))
	checkout := NewCheckoutHandler(checkoutapp.NewService(carts, orderRepo, order.NewNumberGenerator(), stubNotifier{}, bus, tracker))
	content := NewContentHandler(contentapp.NewService(
		persistence.NewGormBannerRepository(db),
		persistence.NewGormAnnouncementRepository(db),
		persistence.NewGormContactMessageRepository(db),
		nil, tracker, nil,
	))
	admin := NewOrderAdminHandler(env.orders)
	productAdmin := NewProductAdminHandler(env.products)
	categoryAdmin := NewCategoryAdminHandler(env.categories)

	r := env.engine
	r.Use(middleware.RequestID())
	shop := r.Group("/api/v1", middleware.CartSession(middleware.DefaultCartSessionConfig()))
	shop.GET("/products", storefront.ListProducts)
	shop.GET("/products/:slug", storefront.GetProduct)
	shop.GET("/categories", storefront.ListCategories)
	shop.GET("/categories/:slug/products", storefront.CategoryProducts)
	shop.GET("/cart", cartHandler.Get)
	shop.POST("/cart/items", cartHandler.AddItem)
	shop.POST("/cart/buy-now", cartHandler.BuyNow)
	shop.PUT("/cart/items/:key", cartHandler.UpdateQuantity)
	shop.DELETE("/cart/items/:key", cartHandler.RemoveItem)
	shop.DELETE("/cart", cartHandler.Clear)
	shop.GET("/checkout", checkout.Begin)
	shop.POST("/checkout", checkout.PlaceOrder)
	shop.GET("/orders/:orderId/summary", checkout.Summary)
	shop.GET("/announcements", content.ActiveAnnouncements)
	shop.POST("/contact", content.SubmitContact)

	adm := r.Group("/api/v1/admin")
	adm.GET("/orders", admin.List)
	adm.GET("/orders/:orderId", admin.Get)
	adm.PATCH("/orders/:orderId/status", admin.UpdateStatus)
	adm.PUT("/orders/:orderId/customer", admin.UpdateCustomer)
	adm.DELETE("/orders/:orderId", admin.Delete)
	adm.GET("/orders/:orderId/slip", admin.Slip)
	adm.GET("/dashboard", admin.Dashboard)
	adm.GET("/products", productAdmin.List)
	adm.GET("/products/:id", productAdmin.Get)
	adm.POST("/products", productAdmin.Create)
	adm.PUT("/products/:id", productAdmin.Update)
	adm.PATCH("/products/:id/status", productAdmin.SetStatus)
	adm.DELETE("/products/:id", productAdmin.Delete)
	adm.GET("/categories", categoryAdmin.List)
	adm.POST("/categories", categoryAdmin.Create)
	adm.DELETE("/categories/:id", categoryAdmin.Delete)
	adm.POST("/announcements", content.CreateAnnouncement)
	adm.GET("/contacts", content.ListContacts)

	return env
}

// seedProduct creates a category and an active product in it
func (e *storeEnv) seedProduct(t *testing.T, name string, price int64, sizes, colors []string) *catalogapp.ProductResponse {
	t.Helper()
	ctx := context.Background()
	category, err := e.categories.Create(ctx, catalogapp.CategoryRequest{
		Name:        "Diagnostics " + name,
		Description: "Clinic diagnostics",
		ImageURL:    "https://cdn.example.com/diagnostics.jpg",
	})
	require.NoError(t, err)
	p, err := e.products.Create(ctx, catalogapp.ProductRequest{
		Name:       name,
		CategoryID: category.ID,
		Price:      decimal.NewFromInt(price),
		Stock:      25,
		Sizes:      sizes,
		Colors:     colors,
		Images:     []string{"https://cdn.example.com/" + catalog.Slugify(name) + ".jpg"},
	})
	require.NoError(t, err)
	return p
}

func (e *storeEnv) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(middleware.CartSessionHeader, session)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and returns its data as a map
func decode(t *testing.T, w *httptest.ResponseRecorder) (dto.Response, map[string]any) {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	data, _ := resp.Data.(map[string]any)
	return resp, data
}
