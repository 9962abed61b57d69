package reservation

import (
	"context"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"
	"hotelparadise/internal/ws"
)

// ReservationRepository defines the persistence operations the
// lifecycle manager needs.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CountConflicts(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (int64, error)
	Update(ctx context.Context, id int64, changes repository.ReservationChanges) error
	CancelConfirmed(ctx context.Context, id, userID int64) (int64, error)
	ListAllWithDetails(ctx context.Context) ([]repository.ReservationDetails, error)
	ListByUserWithDetails(ctx context.Context, userID int64) ([]repository.ReservationDetails, error)
}

// RoomRepository defines the room lookups the lifecycle manager needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// ChangeBroadcaster pushes state changes to connected dashboards.
type ChangeBroadcaster interface {
	Broadcast(msg ws.Message)
}
