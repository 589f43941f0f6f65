package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/auth"
	"carpool/internal/handler"
	"carpool/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	TripHandler    *handler.TripHandler
	BookingHandler *handler.BookingHandler
	ProfileHandler *handler.ProfileHandler
	RouteHandler   *handler.RouteHandler
	WSHandler      *handler.WSHandler
	AuthService    *auth.Service
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/token", deps.AuthHandler.IssueToken)

		// Public browse routes.
		v1.GET("/trips", deps.TripHandler.Search)
		v1.GET("/trips/:id", deps.TripHandler.GetTrip)
		v1.GET("/profiles/:id", deps.ProfileHandler.GetProfile)
		v1.GET("/stats", deps.ProfileHandler.CommunityStats)
		v1.POST("/routes/estimate", deps.RouteHandler.Estimate)

		// Routes acting as a signed-in member.
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.AuthService))
		{
			authed.POST("/trips", deps.TripHandler.PostTrip)
			authed.POST("/trips/:id/close", deps.TripHandler.CloseTrip)

			authed.POST("/trips/:id/bookings", deps.BookingHandler.RequestBooking)
			authed.GET("/trips/:id/bookings", deps.BookingHandler.ListForTrip)
			authed.GET("/bookings", deps.BookingHandler.ListMine)
			authed.POST("/bookings/:id/confirm", deps.BookingHandler.ConfirmBooking)
			authed.POST("/bookings/:id/reject", deps.BookingHandler.RejectBooking)
			authed.POST("/bookings/:id/cancel", deps.BookingHandler.CancelBooking)

			authed.GET("/ws", deps.WSHandler.Connect)
		}
	}

	return router
}
