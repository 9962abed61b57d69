package events

import (
	"context"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"
	"hotelparadise/internal/ws"
)

// EventRepository defines the persistence operations the capacity guard
// and the event directory need.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListWithStats(ctx context.Context, userID int64) ([]repository.EventWithStats, error)
	ListUpcomingWithStats(ctx context.Context, from time.Time) ([]repository.EventWithStats, error)
	CountAttendees(ctx context.Context, eventID int64) (int64, error)
	IsRegistered(ctx context.Context, eventID, userID int64) (bool, error)
	CreateAttendee(ctx context.Context, a *domain.EventAttendee) error
	DeleteAttendee(ctx context.Context, eventID, userID int64) (int64, error)
	ListAttendeesWithDetails(ctx context.Context, eventID int64) ([]repository.AttendeeDetails, error)
}

// ChangeBroadcaster pushes enrollment changes to connected dashboards.
type ChangeBroadcaster interface {
	Broadcast(msg ws.Message)
}
