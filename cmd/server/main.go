package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/booking"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/config"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/database"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/handler"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/repository"
	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	// The process owns the single shared connection pool: opened here,
	// handed to every repository, closed on shutdown.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	roomRepo := repository.NewRoomRepo(db)
	kitchenRepo := repository.NewKitchenTypeRepo(db)
	typeRepo := repository.NewReservationTypeRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	bookingSvc := booking.NewService(reservationRepo)

	catalogHandler := handler.NewCatalogHandler(roomRepo, kitchenRepo, typeRepo)
	reservationHandler := handler.NewReservationHandler(reservationRepo, typeRepo, roomRepo, bookingSvc, cfg.AMQPURL)

	// Rate limiting degrades to a pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, catalogHandler)
	router.RegisterReservations(e, reservationHandler, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
