package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/billcore/backend/internal/application/billing"
	creditapp "github.com/billcore/backend/internal/application/credit"
	deliveryapp "github.com/billcore/backend/internal/application/delivery"
	identityapp "github.com/billcore/backend/internal/application/identity"
	partnerapp "github.com/billcore/backend/internal/application/partner"
	reportapp "github.com/billcore/backend/internal/application/report"
	"github.com/billcore/backend/internal/domain/identity"
	"github.com/billcore/backend/internal/infrastructure/auth"
	"github.com/billcore/backend/internal/infrastructure/cache"
	"github.com/billcore/backend/internal/infrastructure/config"
	"github.com/billcore/backend/internal/infrastructure/logger"
	"github.com/billcore/backend/internal/infrastructure/persistence"
	"github.com/billcore/backend/internal/infrastructure/storage"
	"github.com/billcore/backend/internal/infrastructure/telemetry"
	"github.com/billcore/backend/internal/interfaces/http/handler"
	"github.com/billcore/backend/internal/interfaces/http/middleware"
	"github.com/billcore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/billcore/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Billing Ledger API
//	@version		1.0
//	@description	Multi-tenant billing and credit ledger backend API
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/billcore/backend
//	@contact.email	support@billcore.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize OpenTelemetry providers
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database query tracing via GORM callbacks
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Database metrics (query latency, slow queries, pool stats)
	if cfg.Telemetry.Enabled {
		dbMetrics, err := telemetry.NewDBMetrics(
			meterProvider.Meter("billing.db"),
			telemetry.DBMetricsConfig{
				Enabled:            true,
				SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
			},
			log,
		)
		if err != nil {
			log.Warn("Failed to create database metrics", zap.Error(err))
		} else if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Warn("Failed to register database metrics plugin", zap.Error(err))
		}
	}

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	proxyRepo := persistence.NewGormProxyBillRepository(db.DB)
	creditRepo := persistence.NewGormCreditEntryRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token blacklist backed by Redis, with in-memory fallback for
	// single-instance development setups
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable for token blacklist, using in-memory blacklist", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
		log.Info("Using Redis token blacklist")
	}

	// Idempotency store for payment submission deduplication
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Object storage for scanned bill images
	var objectStorage billingapp.ObjectStorageService
	if cfg.Storage.Endpoint != "" || cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Warn("Failed to ensure storage bucket exists", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("Object storage not configured, bill image uploads are disabled")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Identity services (auth, user, tenant)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(tenantRepo, userRepo, jwtService, tokenBlacklist, identityapp.DefaultAuthServiceConfig(), log)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, log)
	userService := identityapp.NewUserService(userRepo, log)

	// Ledger services
	vendorService := partnerapp.NewVendorService(vendorRepo, billRepo, proxyRepo, creditRepo)
	billService := billingapp.NewBillService(txScope, billRepo, proxyRepo, creditRepo, vendorRepo)
	proxyBillService := billingapp.NewProxyBillService(txScope, billRepo, proxyRepo, vendorRepo)
	billImageService := billingapp.NewBillImageService(billRepo, objectStorage)
	if cfg.Storage.PresignExpiration > 0 {
		billImageService.SetConfig(billingapp.BillImageServiceConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		})
	}
	creditService := creditapp.NewCreditService(creditRepo, vendorRepo, billRepo, proxyRepo, idempotencyStore)
	deliveryService := deliveryapp.NewDeliveryService(deliveryRepo, billRepo, proxyRepo, userRepo)
	outstandingService := reportapp.NewOutstandingService(vendorRepo, billRepo, proxyRepo, creditRepo)

	// Business metrics: counters recorded by the ledger services plus a
	// periodic sweep of outstanding balances per tenant
	if cfg.Telemetry.Enabled {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:          meterProvider.Meter("billing.business"),
			Logger:         log,
			LedgerProvider: telemetry.NewGormLedgerMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to create business metrics", zap.Error(err))
		} else {
			billService.SetBusinessMetrics(businessMetrics)
			proxyBillService.SetBusinessMetrics(businessMetrics)
			creditService.SetBusinessMetrics(businessMetrics)
			businessMetrics.StartPeriodicCollection(context.Background(), telemetry.NewGormTenantProvider(db.DB), 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	userHandler := handler.NewUserHandler(userService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	billHandler := handler.NewBillHandler(billService, billImageService)
	proxyBillHandler := handler.NewProxyBillHandler(proxyBillService)
	creditHandler := handler.NewCreditHandler(creditService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	reportHandler := handler.NewReportHandler(outstandingService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Tracing/Metrics - OpenTelemetry (if enabled)
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// OpenTelemetry HTTP tracing and metrics (if enabled)
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
		engine.Use(middleware.Profiling())
	}

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint with optional protection
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.JWTAuthMiddleware(jwtService)),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireAnyRole(string(identity.RoleAdmin))

	// Identity domain - public routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)

	// Identity domain - protected routes
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/auth/logout", authHandler.Logout)
	identityRoutes.GET("/auth/me", authHandler.GetCurrentUser)
	identityRoutes.PUT("/auth/password", authHandler.ChangePassword)

	// User management routes (admin only)
	identityRoutes.POST("/users", adminOnly, userHandler.Create)
	identityRoutes.GET("/users", adminOnly, userHandler.List)
	identityRoutes.GET("/users/:id", adminOnly, userHandler.GetByID)
	identityRoutes.PUT("/users/:id", adminOnly, userHandler.Update)
	identityRoutes.DELETE("/users/:id", adminOnly, userHandler.Delete)
	identityRoutes.POST("/users/:id/activate", adminOnly, userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", adminOnly, userHandler.Deactivate)
	identityRoutes.POST("/users/:id/unlock", adminOnly, userHandler.Unlock)

	// Tenant management routes (admin only)
	identityRoutes.POST("/tenants", adminOnly, tenantHandler.Create)
	identityRoutes.GET("/tenants", adminOnly, tenantHandler.List)
	identityRoutes.GET("/tenants/:id", adminOnly, tenantHandler.GetByID)
	identityRoutes.GET("/tenants/code/:code", adminOnly, tenantHandler.GetByCode)
	identityRoutes.PUT("/tenants/:id", adminOnly, tenantHandler.Update)
	identityRoutes.DELETE("/tenants/:id", adminOnly, tenantHandler.Delete)
	identityRoutes.POST("/tenants/:id/activate", adminOnly, tenantHandler.Activate)
	identityRoutes.POST("/tenants/:id/deactivate", adminOnly, tenantHandler.Deactivate)

	// Vendor ledger parties
	vendorRoutes := router.NewDomainGroup("vendor", "/vendors")
	vendorRoutes.POST("", vendorHandler.Create)
	vendorRoutes.GET("", vendorHandler.List)
	vendorRoutes.GET("/:id", vendorHandler.GetByID)
	vendorRoutes.PUT("/:id", vendorHandler.Update)
	vendorRoutes.DELETE("/:id", vendorHandler.Delete)
	vendorRoutes.POST("/:id/activate", vendorHandler.Activate)
	vendorRoutes.POST("/:id/deactivate", vendorHandler.Deactivate)

	// Bills and their sub-resources
	billRoutes := router.NewDomainGroup("bill", "/bills")
	billRoutes.POST("", billHandler.Create)
	billRoutes.GET("", billHandler.List)
	billRoutes.GET("/number/:number", billHandler.GetByNumber)
	billRoutes.GET("/:id", billHandler.GetByID)
	billRoutes.PUT("/:id", billHandler.Update)
	billRoutes.DELETE("/:id", billHandler.Delete)
	billRoutes.POST("/:id/authorize", middleware.RequireAnyRole(string(identity.RoleAdmin), string(identity.RoleOrganiser)), billHandler.Authorize)
	billRoutes.POST("/:id/cancel", billHandler.Cancel)
	billRoutes.GET("/:id/remaining-capacity", billHandler.RemainingCapacity)
	billRoutes.POST("/:id/image/initiate", billHandler.InitiateImageUpload)
	billRoutes.POST("/:id/image/confirm", billHandler.ConfirmImageUpload)
	billRoutes.GET("/:id/image/url", billHandler.GetImageURL)
	billRoutes.GET("/:id/proxy-bills", proxyBillHandler.ListByParent)
	billRoutes.GET("/:id/credits", creditHandler.ListByBill)
	billRoutes.GET("/:id/deliveries", deliveryHandler.ListByBill)

	// Proxy bill splits
	proxyBillRoutes := router.NewDomainGroup("proxy-bill", "/proxy-bills")
	proxyBillRoutes.POST("", proxyBillHandler.Create)
	proxyBillRoutes.POST("/splits", proxyBillHandler.CreateSplits)
	proxyBillRoutes.GET("", proxyBillHandler.List)
	proxyBillRoutes.GET("/:id", proxyBillHandler.GetByID)
	proxyBillRoutes.POST("/:id/confirm", proxyBillHandler.Confirm)
	proxyBillRoutes.POST("/:id/cancel", proxyBillHandler.Cancel)
	proxyBillRoutes.GET("/:id/credits", creditHandler.ListByProxyBill)

	// Credit ledger
	creditRoutes := router.NewDomainGroup("credit", "/credits")
	creditRoutes.POST("", creditHandler.RecordPayment)
	creditRoutes.GET("", creditHandler.List)
	creditRoutes.GET("/:id", creditHandler.GetByID)

	// Delivery orders
	deliveryTransition := middleware.RequireAnyRole(
		string(identity.RoleAdmin),
		string(identity.RoleOrganiser),
		string(identity.RoleDelivery),
	)
	deliveryRoutes := router.NewDomainGroup("delivery", "/deliveries")
	deliveryRoutes.POST("", deliveryHandler.Create)
	deliveryRoutes.GET("", deliveryHandler.List)
	deliveryRoutes.GET("/mine", deliveryHandler.ListMine)
	deliveryRoutes.GET("/:id", deliveryHandler.GetByID)
	deliveryRoutes.POST("/:id/dispatch", deliveryTransition, deliveryHandler.Dispatch)
	deliveryRoutes.POST("/:id/deliver", deliveryTransition, deliveryHandler.MarkDelivered)
	deliveryRoutes.POST("/:id/cancel", deliveryTransition, deliveryHandler.Cancel)
	deliveryRoutes.POST("/:id/reassign", adminOnly, deliveryHandler.Reassign)

	// Outstanding balance reports
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/outstanding", reportHandler.TenantOutstanding)
	reportRoutes.GET("/outstanding/vendors/:id", reportHandler.VendorOutstanding)

	// System routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(vendorRoutes).
		Register(billRoutes).
		Register(proxyBillRoutes).
		Register(creditRoutes).
		Register(deliveryRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
