package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/pkg/keymutex"
	"hotelparadise/internal/repository"
	"hotelparadise/internal/ws"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	events EventRepository
	locks  *keymutex.KeyMutex
	notifs ChangeBroadcaster
}

func NewService(events EventRepository, locks *keymutex.KeyMutex, notifs ChangeBroadcaster) *Service {
	return &Service{
		events: events,
		locks:  locks,
		notifs: notifs,
	}
}

func eventKey(eventID int64) string {
	return fmt.Sprintf("event:%d", eventID)
}

func (s *Service) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e.MaxCapacity <= 0 {
		return nil, ErrValidation
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) UpdateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e.MaxCapacity <= 0 {
		return nil, ErrValidation
	}

	affected, err := s.events.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.events.GetByID(ctx, e.ID)
}

// DeleteEvent removes the event and its attendee rows. It takes the
// per-event lock so a racing enrollment cannot slip an attendee in
// between the delete and its cascade.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	s.locks.Lock(eventKey(id))
	defer s.locks.Unlock(eventKey(id))

	affected, err := s.events.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEvents(ctx context.Context, userID int64) ([]repository.EventWithStats, error) {
	return s.events.ListWithStats(ctx, userID)
}

func (s *Service) ListUpcomingEvents(ctx context.Context, from time.Time) ([]repository.EventWithStats, error) {
	return s.events.ListUpcomingWithStats(ctx, from)
}

// Register enrolls the user into the event. The duplicate check, the
// capacity count and the insert run inside the per-event critical
// section; when N callers race on the last seats, exactly the remaining
// capacity succeeds and the rest observe ErrEventFull.
func (s *Service) Register(ctx context.Context, eventID, userID int64) (*domain.EventAttendee, error) {
	s.locks.Lock(eventKey(eventID))
	defer s.locks.Unlock(eventKey(eventID))

	// Fetched under the lock so a concurrent DeleteEvent cannot make
	// the insert land on an event that no longer exists.
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	registered, err := s.events.IsRegistered(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	count, err := s.events.CountAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if count >= int64(event.MaxCapacity) {
		return nil, ErrEventFull
	}

	a := &domain.EventAttendee{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.events.CreateAttendee(ctx, a); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.Broadcast(ws.Message{Kind: ws.KindEventRegistered, ID: eventID, At: time.Now().UTC()})
	}

	return a, nil
}

// Withdraw removes the user's enrollment. The row is physically
// deleted, freeing the seat.
func (s *Service) Withdraw(ctx context.Context, eventID, userID int64) error {
	affected, err := s.events.DeleteAttendee(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotRegistered
	}

	if s.notifs != nil {
		s.notifs.Broadcast(ws.Message{Kind: ws.KindEventWithdrawn, ID: eventID, At: time.Now().UTC()})
	}

	return nil
}

func (s *Service) ListAttendees(ctx context.Context, eventID int64) ([]repository.AttendeeDetails, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.events.ListAttendeesWithDetails(ctx, eventID)
}

// isUniqueViolation recognizes the attendee unique index firing on
// postgres, the storage-level backstop behind the in-process lock.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
