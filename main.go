package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/di"
	"github.com/yjpark/sns-service/internal/middleware"
	"github.com/yjpark/sns-service/pkg/config"
	"github.com/yjpark/sns-service/pkg/database"
	"github.com/yjpark/sns-service/pkg/logger"
	redisclient "github.com/yjpark/sns-service/pkg/redis"
	"github.com/yjpark/sns-service/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting SNS Service...")

	ctx := context.Background()

	// Initialize tracing (no-op when disabled)
	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
	}

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection
	rdb, err := redisclient.NewClient(ctx, &redisclient.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		MaxRetries:    3,
		RetryInterval: 1 * time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer rdb.Close()
	appLog.Info("Redis connected")

	// Build dependency injection container
	container := di.NewContainer(cfg, db, rdb, appLog)

	// Rate limiter for the credential endpoints
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer limiter.Stop()

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(appLog))
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware())
	}
	// Resolve the bearer token on every request; failures continue
	// unauthenticated and protected routes reject downstream.
	router.Use(middleware.Authenticate(container.UserService, cfg.JWT.Secret, appLog))

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// API routes
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/join", limiter.Middleware(), container.UserHandler.Join)
			users.POST("/login", limiter.Middleware(), container.UserHandler.Login)

			protected := users.Group("", middleware.RequireAuth())
			{
				protected.GET("/alarm", container.UserHandler.Alarms)
				protected.GET("/alarm/subscribe", container.AlarmHandler.Subscribe)
			}
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", container.PostHandler.List)
			posts.GET("/:postId/comments", container.PostHandler.GetComments)
			posts.GET("/:postId/likes", container.PostHandler.LikeCount)

			protected := posts.Group("", middleware.RequireAuth())
			{
				protected.POST("", container.PostHandler.Create)
				protected.GET("/my", container.PostHandler.My)
				protected.PUT("/:postId", container.PostHandler.Modify)
				protected.DELETE("/:postId", container.PostHandler.Delete)
				protected.POST("/:postId/likes", container.PostHandler.Like)
				protected.POST("/:postId/comments", container.PostHandler.Comment)
			}
		}
	}

	// Create HTTP server. WriteTimeout stays unset: the alarm
	// subscription stream is long-lived and bounds itself via the
	// channel timeout instead.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("SNS Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Close all live alarm channels first so subscription handlers
	// unblock and let Shutdown drain.
	container.Registry.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Telemetry shutdown failed: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
