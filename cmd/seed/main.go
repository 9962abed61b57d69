package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"hotelparadise/internal/config"
	"hotelparadise/internal/database"
	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM event_attendees")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	events := repository.NewEventRepository(db)

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Name:         "Administrador",
		Email:        "admin@hotelparadise.com",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("seed admin:", err)
	}
	log.Println("Admin created: admin@hotelparadise.com / admin123")

	clientHash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	for _, email := range []string{"maria@mail.com", "carlos@mail.com"} {
		client := &domain.User{
			Name:         email[:len(email)-len("@mail.com")],
			Email:        email,
			PasswordHash: string(clientHash),
			Role:         domain.RoleClient,
		}
		if err := users.Create(ctx, client); err != nil {
			log.Fatal("seed client:", err)
		}
	}

	log.Println("Creating rooms...")
	seedRooms := []domain.Room{
		{Number: "101", Type: "single", NightlyRate: 80, Capacity: 1, Status: domain.RoomAvailable},
		{Number: "102", Type: "double", NightlyRate: 120, Capacity: 2, Status: domain.RoomAvailable},
		{Number: "201", Type: "suite", NightlyRate: 250, Capacity: 4, Status: domain.RoomAvailable},
		{Number: "202", Type: "double", NightlyRate: 120, Capacity: 2, Status: domain.RoomMaintenance},
	}
	for i := range seedRooms {
		if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
			log.Fatal("seed room:", err)
		}
	}

	log.Println("Creating events...")
	now := time.Now().UTC()
	seedEvents := []domain.Event{
		{
			Title:       "Cena de gala",
			Description: "Cena de bienvenida en el salón principal",
			Date:        now.AddDate(0, 0, 7),
			Time:        "20:00",
			Location:    "Salón Principal",
			MaxCapacity: 50,
		},
		{
			Title:       "Clase de yoga",
			Description: "Sesión matutina junto a la piscina",
			Date:        now.AddDate(0, 0, 3),
			Time:        "07:30",
			Location:    "Piscina",
			MaxCapacity: 15,
		},
	}
	for i := range seedEvents {
		if err := events.Create(ctx, &seedEvents[i]); err != nil {
			log.Fatal("seed event:", err)
		}
	}

	log.Println("Seed complete.")
}
