package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelparadise/internal/config"
	"hotelparadise/internal/database"
	"hotelparadise/internal/middleware"
	"hotelparadise/internal/modules/auth"
	"hotelparadise/internal/modules/events"
	"hotelparadise/internal/modules/reports"
	"hotelparadise/internal/modules/reservation"
	"hotelparadise/internal/modules/rooms"
	jwtsvc "hotelparadise/internal/pkg/jwt"
	"hotelparadise/internal/pkg/keymutex"
	"hotelparadise/internal/repository"
	"hotelparadise/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	eventRepo := repository.NewEventRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	locks := keymutex.New()
	hub := ws.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	reservationService := reservation.NewService(reservationRepo, roomRepo, locks, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	roomsService := rooms.NewService(roomRepo, reservationRepo)
	roomsHandler := rooms.NewHandler(roomsService, reservationService)

	eventsService := events.NewService(eventRepo, locks, hub)
	eventsHandler := events.NewHandler(eventsService)

	reportsService := reports.NewService(roomRepo, reservationRepo, eventRepo)
	reportsHandler := reports.NewHandler(reportsService)

	wsHandler := ws.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		public := v1.Group("/public")
		{
			roomsHandler.RegisterPublicRoutes(public)
			eventsHandler.RegisterPublicRoutes(public)
			reportsHandler.RegisterPublicRoutes(public)
		}

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))

		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())

		authHandler.RegisterProtectedRoutes(protected)
		reservationHandler.RegisterRoutes(protected)
		roomsHandler.RegisterRoutes(protected, admin)
		eventsHandler.RegisterRoutes(protected, admin)
		reportsHandler.RegisterRoutes(protected, admin)
		wsHandler.RegisterRoutes(protected)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
