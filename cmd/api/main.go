package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/migrations"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.WithField("environment", cfg.Environment).Info("Starting recipe service")
	gin.SetMode(cfg.Environment.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(ctx, db, migrations.FS, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	images, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	var redisClient *redis.Client
	var uploadLimiter *middleware.RateLimiter
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			// Continue without rate limiting if Redis is not available
			log.WithError(err).Warn("Redis unavailable, image uploads are not rate limited")
			redisClient = nil
		} else {
			defer redisClient.Close()
			if cfg.UploadRateLimit > 0 {
				uploadLimiter = middleware.NewUploadRateLimiter(redisClient, cfg.UploadRateLimit, cfg.UploadRateWindow, log)
			}
		}
	}

	m := metrics.New()
	recipeService := service.NewRecipeService(database.NewRecipeStore(db), images, cfg.PublicBaseURL, log, m)

	var limit gin.HandlerFunc
	if uploadLimiter != nil {
		limit = uploadLimiter.RateLimitMiddleware()
	}
	engine := router.SetupRouter(
		api.NewRecipeHandler(recipeService, log, cfg.MaxUploadBytes, limit),
		api.NewHealthHandler(db, redisClient),
		router.Options{Log: log, Metrics: m, AllowedOrigins: cfg.CORSAllowedOrigins},
	)

	srv := server.New(cfg, engine, log)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	log.Info("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped")
}
