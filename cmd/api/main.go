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
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/testpick/testpick-api/config"
	"github.com/testpick/testpick-api/internal/handlers"
	"github.com/testpick/testpick-api/internal/middleware"
	"github.com/testpick/testpick-api/internal/repository"
	"github.com/testpick/testpick-api/internal/schema"
	"github.com/testpick/testpick-api/internal/services"
	"github.com/testpick/testpick-api/pkg/db"
	"github.com/testpick/testpick-api/pkg/logger"
	"github.com/testpick/testpick-api/pkg/metrics"
	"github.com/testpick/testpick-api/pkg/profiling"
	"github.com/testpick/testpick-api/pkg/tracing"
)

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

	logger.Info("Starting Test Pick API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
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

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability.ServiceName, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: Database migrations are run separately via the migrate command

	// The submission schema is built once and shared read-only between the
	// endpoint and any in-process form consumer
	submissionSchema := schema.New()

	// Wire repository, service, handlers
	submissionRepo := repository.NewSubmissionRepository(pool)
	submissionService := services.NewSubmissionService(submissionRepo, submissionSchema)

	submitHandler := handlers.NewSubmitHandler(submissionService)
	healthHandler := handlers.NewHealthHandler(pool)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Rate limiters: general traffic vs the public form post (spam control)
	generalRateLimiter := middleware.NewRateLimiter(100, 200)
	submitRateLimiter := middleware.NewRateLimiter(5, 10)
	defer generalRateLimiter.Stop()
	defer submitRateLimiter.Stop()

	// API routes
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/submit", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), submitHandler.Submit)

	// Create HTTP server
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
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
