package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcart "github.com/hmehmood121/ZuhaSurgical/internal/application/cart"
	catalogapp "github.com/hmehmood121/ZuhaSurgical/internal/application/catalog"
	checkoutapp "github.com/hmehmood121/ZuhaSurgical/internal/application/checkout"
	contentapp "github.com/hmehmood121/ZuhaSurgical/internal/application/content"
	identityapp "github.com/hmehmood121/ZuhaSurgical/internal/application/identity"
	orderapp "github.com/hmehmood121/ZuhaSurgical/internal/application/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/uploads"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/order"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/auth"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/cache"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/config"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/email"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/event"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/logger"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/messaging"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/meta"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/migration"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/persistence"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/printing"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/storage"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/telemetry"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/handler"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/router"
	"github.com/hmehmood121/ZuhaSurgical/migrations"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/hmehmood121/ZuhaSurgical/docs"
)

// storeName appears in emails and on order slips
const storeName = "Zuha Surgical"

//	@title			ZuhaSurgical Store API
//	@version		1.0
//	@description	Storefront, cart, checkout and admin API of the Zuha Surgical shop

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry. Every provider falls back to a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	if logsProvider.IsEnabled() {
		// Same output as before, plus every entry exported over OTLP
		log, err = logger.New(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
			Cores:  []zapcore.Core{logsProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))},
		})
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	storeMetrics, err := telemetry.NewStoreMetrics(meterProvider.Meter("zuha-store"))
	if err != nil {
		log.Warn("Store metrics disabled", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLoggerFor(log, cfg.Log.Level, cfg.App.IsProduction(), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := migrateSchema(db, log); err != nil {
		log.Fatal("Failed to prepare database schema", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:        db.Driver(),
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database ready", zap.String("driver", db.Driver()))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	bannerRepo := persistence.NewGormBannerRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)
	contactRepo := persistence.NewGormContactMessageRepository(db.DB)

	// Cart store: Redis when enabled and reachable, memory otherwise
	cartStore, err := cache.NewCartStoreFactory(cfg.Redis, cfg.Cart,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}
	defer func() {
		if err := cartStore.Close(); err != nil {
			log.Error("Error closing cart store", zap.Error(err))
		}
	}()
	redisClient := cache.RedisClient(cartStore)

	// Object storage
	var objects uploads.ObjectStorage = storage.DisabledStorage{}
	var s3Storage *storage.S3Storage
	if cfg.Storage.Enabled {
		s3Storage, err = storage.NewS3Storage(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to configure object storage", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
			log.Warn("Object storage bucket check failed", zap.Error(err))
		}
		cancel()
		objects = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", s3Storage.Bucket()))
	}

	// Event bus. Order events are logged and, when enabled, sent to Kafka.
	eventBus := event.NewInMemoryEventBus(log)
	orderLog := event.NewOrderLogHandler(log)
	eventBus.Subscribe(orderLog, orderLog.EventTypes()...)
	if cfg.Kafka.Enabled {
		kafkaPublisher := messaging.NewOrderEventPublisher(messaging.NewKafkaWriter(cfg.Kafka), cfg.Kafka.WriteTimeout, log)
		eventBus.Subscribe(kafkaPublisher, kafkaPublisher.EventTypes()...)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Kafka order events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.OrdersTopic),
		)
	}

	// Tracking: pixel events for the browser, Conversion API when configured
	var metaSender tracking.Sender
	if cfg.Meta.Enabled() {
		metaSender = meta.NewClient(cfg.Meta, log)
	} else {
		log.Info("Meta Conversion API not configured, pixel events only")
	}
	tracker := tracking.NewService(metaSender, cfg.App.Currency,
		tracking.WithLogger(log),
		tracking.WithMetrics(storeMetrics),
	)
	defer tracker.Close()

	// Order emails
	emailSender, err := email.NewSender(cfg.Email, log)
	if err != nil {
		log.Fatal("Failed to configure email", zap.Error(err))
	}
	notifier := email.NewOrderNotifier(emailSender,
		email.NotifierConfigFrom(cfg.App, cfg.Email, storeName), storeMetrics)

	// Order slips
	var pdfRenderer printing.PDFRenderer = printing.DisabledRenderer{}
	if cfg.Printing.PDFEnabled {
		pdfRenderer = printing.NewChromedpRenderer(printing.ChromedpConfig{
			Timeout:   cfg.Printing.Timeout,
			RemoteURL: cfg.Printing.RemoteURL,
			ExecPath:  cfg.Printing.ChromePath,
			NoSandbox: os.Geteuid() == 0,
			Logger:    log,
		})
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	slips := printing.NewSlipRenderer(cfg.App.Currency, printing.Seller{
		Name:    cfg.Printing.SellerName,
		Address: cfg.Printing.SellerAddress,
		Phone:   cfg.Printing.SellerPhone,
		Email:   cfg.Printing.SellerEmail,
	})

	// Application services
	carts, err := appcart.NewService(cartStore, cart.DeliveryPolicy{
		Fee:           decimal.NewFromInt(cfg.Cart.DeliveryFee),
		FreeThreshold: decimal.NewFromInt(cfg.Cart.FreeDeliveryThreshold),
	},
		appcart.WithLogger(log),
		appcart.WithMetrics(storeMetrics),
		appcart.WithSessionCacheSize(cfg.Cart.SessionCacheSize),
		appcart.WithPersistTimeout(cfg.Cart.PersistTimeout),
	)
	if err != nil {
		log.Fatal("Failed to create cart service", zap.Error(err))
	}

	var revocations auth.Revocations
	if redisClient != nil {
		revocations = auth.NewRedisRevocations(redisClient)
	}
	authService := identityapp.NewAuthService(cfg.Admin, auth.NewJWTService(cfg.JWT), revocations,
		identityapp.DefaultAuthServiceConfig(), log)

	var objectDeleter contentapp.ObjectDeleter
	if s3Storage != nil {
		objectDeleter = s3Storage
	}

	storefrontService := catalogapp.NewStorefrontService(productRepo, categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	checkoutService := checkoutapp.NewService(carts, orderRepo, order.NewNumberGenerator(), notifier, eventBus, tracker,
		checkoutapp.WithLogger(log),
		checkoutapp.WithMetrics(storeMetrics),
	)
	orderService := orderapp.NewService(orderRepo, productRepo, categoryRepo, eventBus, slips, pdfRenderer, log)
	contentService := contentapp.NewService(bannerRepo, announcementRepo, contactRepo, objectDeleter, tracker, log)

	// System handler with dependency checks for /health
	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion).
		AddCheck("database", db)
	if redisClient != nil {
		systemHandler.AddCheck("redis", handler.CheckFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
	}
	if s3Storage != nil {
		systemHandler.AddCheck("storage", s3Storage)
	}

	handlers := router.Handlers{
		Storefront:    handler.NewStorefrontHandler(storefrontService, tracker),
		Cart:          handler.NewCartHandler(carts, appcart.NewShop(carts, productRepo, tracker)),
		Checkout:      handler.NewCheckoutHandler(checkoutService),
		Content:       handler.NewContentHandler(contentService),
		Tracking:      handler.NewTrackingHandler(tracker),
		Auth:          handler.NewAuthHandler(authService),
		ProductAdmin:  handler.NewProductAdminHandler(productService),
		CategoryAdmin: handler.NewCategoryAdminHandler(categoryService),
		OrderAdmin:    handler.NewOrderAdminHandler(orderService),
		Uploads:       handler.NewUploadHandler(uploads.NewService(objects)),
		System:        systemHandler,
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.App.IsProduction()

	engine := router.NewEngine(router.EngineConfig{
		Logger:         log,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS:           corsConfig,
		Security:       securityConfig,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
			SkipPaths:   []string{"/health"},
		},
		Meter: meterProvider,
	})

	loginLimiter := middleware.NewRateLimiter(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateWindow)
	defer loginLimiter.Stop()
	contactLimiter := middleware.NewRateLimiter(cfg.HTTP.ContactRateLimit, cfg.HTTP.ContactRateWindow)
	defer contactLimiter.Stop()

	router.Setup(engine, handlers, router.Config{
		APIVersion:    "v1",
		Authenticator: authService,
		CartSession: middleware.CartSessionConfig{
			CookieName: cfg.Cart.CookieName,
			MaxAge:     cfg.Cart.CookieMaxAge,
			Secure:     cfg.Cart.CookieSecure,
		},
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		MaxUploadSize:  cfg.HTTP.MaxUploadSize,
		LoginLimiter:   loginLimiter,
		ContactLimiter: contactLimiter,
		Swagger:        swaggerConfig(cfg.Swagger, authService, log),
		Logger:         log,
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully", zap.Int("open_carts", carts.ActiveSessions()))
}

// swaggerConfig guards /swagger with the allow list and, when required, the
// admin token check.
func swaggerConfig(cfg config.SwaggerConfig, authn middleware.Authenticator, log *zap.Logger) middleware.SwaggerConfig {
	sc := middleware.SwaggerConfig{
		Enabled:    cfg.Enabled,
		AllowedIPs: cfg.AllowedIPs,
	}
	if cfg.RequireAuth {
		sc.Auth = middleware.AdminAuth(middleware.AdminAuthConfig{
			Authenticator: authn,
			Logger:        log,
		})
	}
	return sc
}

// migrateSchema applies the embedded SQL migrations on postgres. sqlite has
// no migration driver here, so its tables come from the models.
func migrateSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver() == persistence.DriverSQLite {
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
