package rooms

import (
	"context"
	"time"

	"hotelparadise/internal/domain"
)

// RoomRepository defines the persistence operations the directory and
// the admin CRUD need.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	ListExcludingStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ReservationReader supplies the confirmed-reservation facts the
// directory derives occupancy from and the delete guard checks.
type ReservationReader interface {
	OccupiedRoomIDs(ctx context.Context, at time.Time) (map[int64]bool, error)
	CountConfirmedByRoom(ctx context.Context, roomID int64) (int64, error)
}

// AvailabilityChecker reports a room's availability for a window; the
// reservation service implements it.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}
