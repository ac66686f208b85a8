package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cabbooking/internal/handler"
	"cabbooking/internal/middleware"
)

// ServiceName is reported by the root and health endpoints.
const ServiceName = "Cab Booking API"

// ServiceVersion is reported by the root endpoint.
const ServiceVersion = "1.0.0"

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	FareHandler    *handler.FareHandler
	Logger         *slog.Logger
	AllowedOrigins []string
	RedisClient    *redis.Client // nil disables idempotency
	IdempotencyTTL time.Duration
	NewRelicApp    *newrelic.Application // nil disables APM
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.RideAttributes())
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.IdempotencyTTL, deps.Logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + ServiceName,
			"version": ServiceVersion,
			"docs":    "/api/v1",
		})
	})
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		v1.POST("/cabs/available", deps.FareHandler.AvailableCabs)
		v1.POST("/fare/estimate", deps.FareHandler.Estimate)

		rides := v1.Group("/rides")
		{
			rides.POST("/book", deps.RideHandler.BookRide)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/assign-driver", deps.RideHandler.AssignDriver)
			rides.PATCH("/:id/status", deps.RideHandler.UpdateStatus)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.GET("/:id/receipt", deps.RideHandler.Receipt)
		}

		v1.GET("/history", deps.RideHandler.History)
	}

	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
