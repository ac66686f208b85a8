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

	"cabbooking/internal/app"
	"cabbooking/internal/config"
	"cabbooking/internal/handler"
	"cabbooking/internal/repository/memory"
	"cabbooking/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger := app.NewLogger(os.Stdout, cfg.Log.Level)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	nrApp, err := app.NewNewRelicApp(cfg.NewRelic)
	if err != nil {
		logger.Warn("new relic disabled", slog.String("error", err.Error()))
	} else if nrApp != nil {
		logger.Info("new relic enabled", slog.String("app", cfg.NewRelic.AppName))
	}

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("idempotency enabled", slog.String("redis", cfg.Redis.Addr))
	}

	gin.SetMode(gin.ReleaseMode)
	server := wireServer(redisClient, nrApp, logger, cfg)

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
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
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(redisClient *redis.Client, nrApp *newrelic.Application, logger *slog.Logger, cfg *config.Config) *http.Server {
	// The registry lives for the life of the process.
	rides := memory.NewRideRegistry()
	rideService := app.NewRideService(rides, service.DefaultRandom(), time.Now, logger, nrApp)

	router := app.NewRouter(app.RouterDeps{
		RideHandler:    handler.NewRideHandler(rideService),
		FareHandler:    handler.NewFareHandler(rideService),
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RedisClient:    redisClient,
		IdempotencyTTL: cfg.Idempotency.TTL,
		NewRelicApp:    nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
