package app

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carpool/internal/handler"
	"carpool/internal/middleware"
	"carpool/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler      *handler.RideHandler
	MatchHandler     *handler.MatchHandler
	UserHandler      *handler.UserHandler
	StatsHandler     *handler.StatsHandler
	IdempotencyStore redis.IdempotencyStoreInterface // nil disables replay
	NewRelicApp      *newrelic.Application
	Logger           *slog.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Observability(deps.Logger))
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore, deps.Logger))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id/rides", deps.RideHandler.ListUserRides)
			users.GET("/:id/matches", deps.RideHandler.RankMatchesForUser)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.GET("/:id/matches", deps.RideHandler.RankMatches)
		}

		// Match routes.
		matches := v1.Group("/matches")
		{
			matches.POST("", deps.MatchHandler.CreateMatch)
			matches.GET("/:id", deps.MatchHandler.GetMatch)
			matches.POST("/:id/confirm", deps.MatchHandler.ConfirmMatch)
		}

		v1.GET("/stats", deps.StatsHandler.Get)
	}

	return router
}
