package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/raffle/backend/internal/application/catalog"
	raffleapp "github.com/raffle/backend/internal/application/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/raffle/backend/internal/infrastructure/cache"
	"github.com/raffle/backend/internal/infrastructure/config"
	"github.com/raffle/backend/internal/infrastructure/event"
	"github.com/raffle/backend/internal/infrastructure/logger"
	"github.com/raffle/backend/internal/infrastructure/persistence"
	"github.com/raffle/backend/internal/infrastructure/storage"
	"github.com/raffle/backend/internal/infrastructure/telemetry"
	"github.com/raffle/backend/internal/interfaces/http/handler"
	"github.com/raffle/backend/internal/interfaces/http/middleware"
	"github.com/raffle/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Raffle Backend API
//	@version		1.0
//	@description	Guild raffle inventory and distribution API

//	@contact.name	API Support
//	@contact.url	https://github.com/raffle/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

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

	log.Info("Starting Raffle Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize OpenTelemetry tracing and metrics providers.
	// Both are no-ops when telemetry is disabled in config.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

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

	// Register database query tracing (if enabled)
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		dbTracingCfg.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		dbTracingCfg.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		dbTracing := telemetry.NewDBTracingPlugin(dbTracingCfg, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	raffleRepo := persistence.NewGormRaffleRepository(db.DB)
	distributionRepo := persistence.NewGormDistributionRepository(db.DB)

	// Transaction scope used by allocation and roster sync flows
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	memberService := catalogapp.NewMemberService(memberRepo)
	itemService := catalogapp.NewItemService(itemRepo, categoryRepo)
	raffleService := raffleapp.NewRaffleService(txScope, raffleRepo, memberRepo, itemRepo)
	distributionService := raffleapp.NewDistributionService(txScope, distributionRepo)
	reportService := raffleapp.NewReportService(raffleRepo, distributionRepo, memberRepo, itemRepo)

	// Object storage for item artwork (presigned upload/download URLs)
	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		itemService.SetObjectStorage(objectStorage)
		log.Info("Object storage enabled",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.Bucket),
		)
	}

	// Business metrics (allocation counters, remaining stock gauges)
	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:         meterProvider.Meter("raffle.business"),
			Logger:        log,
			StockProvider: telemetry.NewGormStockMetricsProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
		defer businessMetrics.Stop()
		distributionService.SetBusinessMetrics(businessMetrics)
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log, event.WithHandlerTimeout(cfg.Event.HandlerTimeout))

	// Idempotency store for event handler deduplication
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStoreForDriver(cfg.Event.DedupStoreDriver)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	log.Info("Idempotency store ready", zap.String("driver", cfg.Event.DedupStoreDriver))

	// Stock allocation audit handler, deduplicated across redeliveries
	stockAllocatedHandler := raffleapp.NewStockAllocatedHandler(businessMetrics, log)
	eventBus.Subscribe(event.NewIdempotentHandler(stockAllocatedHandler, idempotencyStore, log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: true,
		}),
	))
	log.Info("Event handlers registered",
		zap.Strings("stock_allocated_events", stockAllocatedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	categoryService.SetEventPublisher(eventBus)
	memberService.SetEventPublisher(eventBus)
	itemService.SetEventPublisher(eventBus)
	raffleService.SetEventPublisher(eventBus)
	distributionService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	memberHandler := handler.NewMemberHandler(memberService)
	itemHandler := handler.NewItemHandler(itemService)
	raffleHandler := handler.NewRaffleHandler(raffleService)
	distributionHandler := handler.NewDistributionHandler(distributionService)
	reportHandler := handler.NewReportHandler(reportService)

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
	// 7. Tracing/metrics/profiling - Observability (if enabled)
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

	// Observability middleware
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
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

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (categories, members, items)
	catalogRoutes := router.NewDomainGroup("catalog", "")

	// Category routes
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Update)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	// Member routes
	catalogRoutes.POST("/members", memberHandler.Create)
	catalogRoutes.GET("/members", memberHandler.List)
	catalogRoutes.GET("/members/:id", memberHandler.GetByID)
	catalogRoutes.PUT("/members/:id", memberHandler.Update)

	// Item routes
	catalogRoutes.POST("/items", itemHandler.Create)
	catalogRoutes.GET("/items", itemHandler.List)
	catalogRoutes.GET("/items/:id", itemHandler.GetByID)
	catalogRoutes.PUT("/items/:id", itemHandler.Update)
	catalogRoutes.POST("/items/:id/image-upload-url", itemHandler.GenerateImageUploadURL)

	// Raffle domain (lifecycle, roster, prize pool, distributions)
	raffleRoutes := router.NewDomainGroup("raffle", "")

	raffleRoutes.POST("/raffles", raffleHandler.Create)
	raffleRoutes.GET("/raffles", raffleHandler.List)
	raffleRoutes.GET("/raffles/:id", raffleHandler.GetByID)
	raffleRoutes.PUT("/raffles/:id", raffleHandler.Update)
	raffleRoutes.DELETE("/raffles/:id", raffleHandler.Delete)
	raffleRoutes.PATCH("/raffles/:id/status", raffleHandler.ChangeStatus)
	raffleRoutes.POST("/raffles/:id/members", raffleHandler.AttachMembers)
	raffleRoutes.PUT("/raffles/:id/members", raffleHandler.SyncMembers)
	raffleRoutes.POST("/raffles/:id/items", raffleHandler.AttachItems)
	raffleRoutes.PUT("/raffles/:id/items", raffleHandler.SyncItems)

	// Distribution routes
	raffleRoutes.POST("/raffles/:id/distributions/auto", distributionHandler.DistributeAuto)
	raffleRoutes.POST("/raffles/:id/distributions", distributionHandler.DistributeManual)
	raffleRoutes.GET("/raffles/:id/distributions", distributionHandler.ListByRaffle)
	raffleRoutes.GET("/distributions", distributionHandler.List)
	raffleRoutes.GET("/distributions/:id", distributionHandler.GetByID)

	// Reporting routes
	raffleRoutes.GET("/raffles/:id/summary", reportHandler.Summary)
	raffleRoutes.GET("/raffles/:id/report", reportHandler.Report)
	raffleRoutes.GET("/raffles/:id/members/:memberId/winnings", reportHandler.MemberWinnings)
	raffleRoutes.GET("/raffles/:id/items/:itemId/winners", reportHandler.ItemWinners)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(raffleRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
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
