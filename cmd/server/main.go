package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/app"
	"carpool/internal/config"
	"carpool/internal/events"
	"carpool/internal/handler"
	"carpool/internal/logging"
	internalRedis "carpool/internal/redis"
	"carpool/internal/repository"
	"carpool/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the store so we can instrument it).
	nrApp := app.NewNewRelic(cfg.NewRelic, logger)

	store, err := app.NewStore(ctx, cfg, nrApp, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Redis is optional: without it the store transaction alone guards matching.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Warn("redis unavailable, continuing without pair locks and idempotency", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("connected to Redis", "addr", cfg.Redis.Addr)
		}
	}

	publisher, err := app.NewPublisher(cfg.Events, logger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}

	// Wire dependencies.
	server, notificationService := wireServer(store, redisClient, nrApp, cfg, publisher, logger)
	defer notificationService.Close()

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "store", cfg.Store, "events", cfg.Events.Broker)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	store repository.Store,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	publisher events.Publisher,
	logger *slog.Logger,
) (*http.Server, *service.NotificationService) {
	// Initialize Redis stores.
	var lockStore internalRedis.LockStoreInterface
	var idempotencyStore internalRedis.IdempotencyStoreInterface
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
		idempotencyStore = internalRedis.NewIdempotencyStore(redisClient)
	}

	// Initialize services.
	notificationService := service.NewNotificationService(publisher, logger)
	rideService := service.NewRideService(store.Rides(), logger)
	matchingService := service.NewMatchingService(store.Rides(), cfg.Matching.DefaultMinScore, logger)
	matchService := service.NewMatchService(store, lockStore, notificationService, cfg.Matching.PairLockTTL, logger)
	statsService := service.NewStatsService(store)

	// Initialize handlers.
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := app.NewRouter(app.RouterDeps{
		RideHandler:      handler.NewRideHandler(rideService, matchingService),
		MatchHandler:     handler.NewMatchHandler(matchService),
		UserHandler:      handler.NewUserHandler(store.Users()),
		StatsHandler:     handler.NewStatsHandler(statsService),
		IdempotencyStore: idempotencyStore,
		NewRelicApp:      nrApp,
		Logger:           logger,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, notificationService
}
