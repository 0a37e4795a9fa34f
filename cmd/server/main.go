package main // Entry point package

import (
	"log"  // Logging library
	"time" // Durations for token TTLs

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/restaurant-table-reservation/internal/database"   // MySQL pool construction
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // Rate limiting middleware
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"      // Lifecycle event consumer
	"github.com/iliyamo/restaurant-table-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/restaurant-table-reservation/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	reservationRepo := repository.NewReservationRepo(db)
	tableRepo := repository.NewTableRepo(db)
	userRepo := repository.NewUserRepo(db)

	reservationHandler := handler.NewReservationHandler(reservationRepo, tableRepo)
	tableHandler := handler.NewTableHandler(tableRepo, reservationRepo, queue_publisher.PublishLifecycleEvent)
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute, cfg.BcryptCost)

	// Consume lifecycle events in the background; the loop reconnects on
	// broker failures and never takes the API down.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	} else {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, reservationHandler, tableHandler, cfg.JWTSecret, cfg.AuthRequired)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
