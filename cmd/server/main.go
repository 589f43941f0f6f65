package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/app"
	"carpool/internal/auth"
	"carpool/internal/config"
	"carpool/internal/handler"
	internalRedis "carpool/internal/redis"
	"carpool/internal/relay"
	"carpool/internal/repository/postgres"
	"carpool/internal/route"
	"carpool/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, bookingRelay := wireServer(db, redisClient, nrApp, cfg)

	// Run the notification relay until shutdown.
	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	go func() {
		if err := bookingRelay.Run(relayCtx); err != nil {
			log.Printf("notification relay stopped: %v", err)
		}
	}()

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	relayCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// notification relay the caller must run.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *relay.Relay) {
	// Redis-backed stores.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	eventFeed := internalRedis.NewEventFeed(redisClient)

	// Repositories.
	tripRepo := postgres.NewTripRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	txManager := postgres.NewTxManager(db)

	// Notification relay.
	registry := relay.NewRegistry()
	bookingRelay := relay.NewRelay(eventFeed, registry)

	// Services.
	authService := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	estimator := route.NewOSRMClient(cfg.Route.OSRMEndpoint)
	tripService := service.NewTripService(tripRepo, bookingRepo, vehicleRepo, profileRepo, estimator, cacheStore, cfg.Route.FuelRatePerKm)
	bookingService := service.NewBookingService(txManager, bookingRepo, tripRepo, profileRepo, eventFeed, cacheStore)
	profileService := service.NewProfileService(profileRepo)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	profileHandler := handler.NewProfileHandler(profileService)
	routeHandler := handler.NewRouteHandler(tripService)
	wsHandler := handler.NewWSHandler(registry)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		TripHandler:    tripHandler,
		BookingHandler: bookingHandler,
		ProfileHandler: profileHandler,
		RouteHandler:   routeHandler,
		WSHandler:      wsHandler,
		AuthService:    authService,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server, bookingRelay
}
