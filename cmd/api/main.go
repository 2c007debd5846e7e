package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	"portfolio-backend/internal/cache"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/repository/backend"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/validation"
)

// @title           Portfolio Content API
// @version         1.0
// @description     Read-mostly content API for a developer portfolio site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "store", cfg.StoreBackend)

	ctx := context.Background()

	// 3. Open the content store
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open content store", "store", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 4. Redis is optional; rate limiting falls back to in-memory counters.
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("UPSTASH_REDIS_URL not configured, rate limiting uses in-memory counters")
		} else {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory counters", "error", err)
		}
	}
	defer redis.Close()

	// 5. Repository and usecases
	repo := repository.NewPortfolioRepository(store.Store, repository.WithRoot(cfg.ContentRoot))
	queryCache := cache.New(cache.WithStaleTime(cfg.CacheStaleTime))
	portfolioUC := usecase.NewPortfolioUsecase(repo, queryCache, validation.New())
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"store": usecase.StoreCheck(store.Store, domain.JoinPath(cfg.ContentRoot, "profile")),
		"redis": func(ctx context.Context) error {
			err := redis.HealthCheck(ctx)
			if errors.Is(err, redis.ErrNotConfigured) {
				return usecase.ErrCheckDisabled
			}
			return err
		},
	})

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		PortfolioUC: portfolioUC,
		HealthUC:    healthUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
