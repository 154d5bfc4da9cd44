package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-seat-reservation/internal/config"
	"github.com/iliyamo/event-seat-reservation/internal/database"
	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/router"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	locations := repository.NewLocationRepo(db)
	spaces := repository.NewSpaceRepo(db)
	events := repository.NewEventRepo(db)
	tables := repository.NewTableRepo(db)
	invitations := repository.NewInvitationRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Services
	authSvc := service.NewAuthService(users, tokens, invitations, service.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	})
	locationSvc := service.NewLocationService(locations)
	spaceSvc := service.NewSpaceService(spaces, locations)
	eventSvc := service.NewEventService(events, locations)
	tableSvc := service.NewTableService(events, locations, tables)
	invitationSvc := service.NewInvitationService(invitations, events, users)
	reservationSvc := service.NewReservationService(invitations, reservations)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	locationHandler := handler.NewLocationHandler(locationSvc)
	spaceHandler := handler.NewSpaceHandler(spaceSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	tableHandler := handler.NewTableHandler(tableSvc)
	invitationHandler := handler.NewInvitationHandler(invitationSvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Distributed rate limiting; a missing Redis disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterOrganizer(e, locationHandler, spaceHandler, eventHandler, tableHandler, invitationHandler, cfg.JWTSecret)
	router.RegisterGuest(e, reservationHandler, invitationHandler, eventHandler, cfg.JWTSecret)
	router.RegisterPublic(e, invitationHandler, middleware.CacheGET(config.LoadCacheConfig(), rdb))

	// Broker consumers run for the life of the process and reconnect on
	// their own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartInvitationConsumer(); err != nil {
			log.Printf("invitation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
