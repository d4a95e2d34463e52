package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/cache"
	"github.com/mentoapp/mentoapp-api/internal/database/memory"
	"github.com/mentoapp/mentoapp-api/internal/database/postgres"
	"github.com/mentoapp/mentoapp-api/internal/handlers"
	"github.com/mentoapp/mentoapp-api/internal/middleware"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	"github.com/mentoapp/mentoapp-api/internal/services"
	"github.com/mentoapp/mentoapp-api/pkg/db"
	"github.com/mentoapp/mentoapp-api/pkg/jwt"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"github.com/mentoapp/mentoapp-api/pkg/profiling"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 1 << 20

// openStore returns the configured storage backend.
// Online mode applies pending migrations before opening the pool.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.Database.WorkOffline {
		logger.Warn("DB_WORK_OFFLINE is set: using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.CACertPath, cfg.Database.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:        cfg.Database.URL,
		MaxConns:   cfg.Database.MaxConns,
		MinConns:   cfg.Database.MinConns,
		CACertPath: cfg.Database.CACertPath,
	})
	if err != nil {
		return nil, err
	}

	return postgres.NewClient(pool), nil
}

func recoveryHandler(c *gin.Context, recovered any) {
	logger.Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong on the server"})
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentoApp API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Settings{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiling, err := profiling.Start(profiling.Settings{
		Enabled:        cfg.Profiling.Enabled,
		Endpoint:       cfg.Profiling.Endpoint,
		AppName:        cfg.Profiling.AppName,
		SampleTypes:    cfg.Profiling.SampleTypes,
		UploadInterval: time.Duration(cfg.Profiling.UploadIntervalSeconds) * time.Second,
		Tags: map[string]string{
			"environment": cfg.Server.AppEnv,
			"instance":    cfg.Observability.ServiceInstanceID,
		},
	})
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiling()

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	tokenManager, err := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// Repositories and services
	mentorCache := cache.NewMentorCache(store, cfg.Cache.MentorTTLSeconds)
	userRepo := repository.NewUserRepository(store, mentorCache)

	authService := services.NewAuthService(userRepo, tokenManager, cfg)
	adminUsersService := services.NewAdminUsersService(userRepo, cfg)
	mentorshipService := services.NewMentorshipService(store)
	sessionService := services.NewSessionService(store, store, cfg)
	profileService := services.NewProfileService(store, userRepo)
	mentorService := services.NewMentorService(userRepo)

	if cfg.Auth.BootstrapAdminEmail != "" {
		bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := authService.EnsureAdmin(bootstrapCtx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword)
		cancel()
		if err != nil {
			logger.Fatal("Failed to ensure bootstrap admin", zap.Error(err))
		}
	}

	apiHandlers := &handlers.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Admin:      handlers.NewAdminHandler(adminUsersService, sessionService),
		Mentee:     handlers.NewMenteeHandler(mentorService, sessionService),
		Mentorship: handlers.NewMentorshipHandler(mentorshipService),
		Profile:    handlers.NewProfileHandler(profileService),
		Health:     handlers.NewHealthHandler(store),
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.CustomRecovery(recoveryHandler))
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.BodySizeLimitMiddleware(maxRequestBodyBytes))

	// Credential endpoints get a much smaller budget than the rest of the API
	generalRateLimiter := middleware.NewRateLimiter("general", 50, 100)
	authRateLimiter := middleware.NewRateLimiter("auth", 0.2, 5) // 1 req/5s, burst of 5
	defer generalRateLimiter.Stop()
	defer authRateLimiter.Stop()

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to MentoApp!")
	})

	api := router.Group("/api", generalRateLimiter.Middleware())
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(api, apiHandlers, middleware.BearerAuthMiddleware(tokenManager), authRateLimiter.Middleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
