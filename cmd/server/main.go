package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/zencrm/backend/internal/application/identity"
	importerapp "github.com/zencrm/backend/internal/application/importer"
	leadapp "github.com/zencrm/backend/internal/application/lead"
	propertyapp "github.com/zencrm/backend/internal/application/property"
	publishingapp "github.com/zencrm/backend/internal/application/publishing"
	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/infrastructure/auth"
	"github.com/zencrm/backend/internal/infrastructure/cache"
	"github.com/zencrm/backend/internal/infrastructure/config"
	"github.com/zencrm/backend/internal/infrastructure/logger"
	"github.com/zencrm/backend/internal/infrastructure/persistence"
	"github.com/zencrm/backend/internal/infrastructure/portal"
	"github.com/zencrm/backend/internal/infrastructure/storage"
	"github.com/zencrm/backend/internal/interfaces/http/handler"
	"github.com/zencrm/backend/internal/interfaces/http/middleware"
	"github.com/zencrm/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ZenCRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Initialize repositories
	listingRepo := persistence.NewGormListingRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)

	// Platform state cache (Redis with in-memory fallback)
	cacheFactory := cache.NewPlatformStateCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithTTL(cfg.Cache.PlatformStateTTL),
	)
	stateCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create platform state cache", zap.Error(err))
	}

	// Portal registry for outbound publishing
	portalRegistry := portal.NewRegistry(credentialRepo, cfg.Portal,
		portal.WithRegistryLogger(log),
	)

	// Inbound listings feed; relay requests fail closed when unconfigured
	var listingFeed publishing.ListingFeed
	if feed, err := portal.NewHTTPListingFeed(cfg.Feed, portal.WithFeedLogger(log)); err == nil {
		listingFeed = feed
	} else {
		log.Warn("Listings feed not configured, import relay disabled", zap.Error(err))
		listingFeed = portal.UnconfiguredFeed{}
	}

	// Object storage for listing images
	var objectStorage propertyapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("Object storage bucket not configured, using stub storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	listingService := propertyapp.NewListingService(listingRepo)
	imageService := propertyapp.NewImageService(listingRepo, objectStorage)
	leadService := leadapp.NewLeadService(leadRepo)
	platformService := publishingapp.NewPlatformService(credentialRepo, stateCache, cfg.Portal,
		publishingapp.WithPlatformLogger(log),
	)
	publishService := publishingapp.NewPublishService(portalRegistry, listingRepo,
		publishingapp.WithPublishLogger(log),
	)
	importService := importerapp.NewImportService(listingFeed, listingRepo,
		importerapp.WithImportLogger(log),
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	listingHandler := handler.NewListingHandler(listingService, imageService, publishService)
	leadHandler := handler.NewLeadHandler(leadService)
	publishingHandler := handler.NewPublishingHandler(platformService, publishService)
	importHandler := handler.NewImportHandler(importService)
	systemHandler := handler.NewSystemHandler(db.DB)

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
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLog(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain: authentication and current-user routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.CurrentUser)
	authRoutes.GET("/me/permissions", authHandler.Permissions)

	// Identity domain: user management
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)

	// Property domain: listings, publishing and images
	listingRoutes := router.NewDomainGroup("listings", "/listings")
	listingRoutes.POST("", listingHandler.Create)
	listingRoutes.GET("", listingHandler.List)
	listingRoutes.GET("/:id", listingHandler.Get)
	listingRoutes.PUT("/:id", listingHandler.Update)
	listingRoutes.DELETE("/:id", listingHandler.Delete)
	listingRoutes.POST("/:id/publish", listingHandler.Publish)
	listingRoutes.POST("/:id/images/uploads", listingHandler.InitiateImageUpload)
	listingRoutes.POST("/:id/images", listingHandler.AttachImage)
	listingRoutes.GET("/:id/images", listingHandler.ListImages)
	listingRoutes.DELETE("/:id/images", listingHandler.RemoveImage)

	// Lead domain
	leadRoutes := router.NewDomainGroup("leads", "/leads")
	leadRoutes.POST("", leadHandler.Create)
	leadRoutes.GET("", leadHandler.List)
	leadRoutes.GET("/:id", leadHandler.Get)
	leadRoutes.PUT("/:id", leadHandler.Update)
	leadRoutes.DELETE("/:id", leadHandler.Delete)

	// Publishing domain: platform catalog, credentials and relay.
	// Credential writes are admin only; stored API keys never leave the server.
	adminOnly := middleware.RequireRole(identity.RoleAdmin)
	publishingRoutes := router.NewDomainGroup("publishing", "/publishing")
	publishingRoutes.GET("/platforms", publishingHandler.ListPlatforms)
	publishingRoutes.GET("/platforms/:code", publishingHandler.GetPlatform)
	publishingRoutes.PUT("/platforms/:code/toggle", publishingHandler.Toggle)
	publishingRoutes.PUT("/credentials/:code", adminOnly, publishingHandler.UpsertCredential)
	publishingRoutes.DELETE("/credentials/:code", adminOnly, publishingHandler.DeleteCredential)
	publishingRoutes.POST("/relay", publishingHandler.Relay)

	// Importer domain: inbound feed relay
	importerRoutes := router.NewDomainGroup("importer", "/importer")
	importerRoutes.POST("/relay", importHandler.Relay)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(userRoutes).
		Register(listingRoutes).
		Register(leadRoutes).
		Register(publishingRoutes).
		Register(importerRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

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
