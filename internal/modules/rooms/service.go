package rooms

import (
	"context"
	"errors"
	"time"

	"hotelparadise/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	rooms        RoomRepository
	reservations ReservationReader
}

func NewService(rooms RoomRepository, reservations ReservationReader) *Service {
	return &Service{
		rooms:        rooms,
		reservations: reservations,
	}
}

// today returns the current date at midnight UTC, the instant the
// directory derives occupancy for.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// effectiveStatus derives a room's point-in-time status: maintenance
// always wins, then occupied when a confirmed reservation covers the
// date, then available. The value is computed per request, never stored.
func effectiveStatus(room domain.Room, occupied map[int64]bool) domain.RoomStatus {
	if room.Status == domain.RoomMaintenance {
		return domain.RoomMaintenance
	}
	if occupied[room.ID] {
		return domain.RoomOccupied
	}
	return domain.RoomAvailable
}

func (s *Service) ListRooms(ctx context.Context) ([]RoomWithStatus, error) {
	list, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(ctx, list)
}

// ListPublicRooms is the unauthenticated directory: maintenance rooms
// are hidden entirely.
func (s *Service) ListPublicRooms(ctx context.Context) ([]RoomWithStatus, error) {
	list, err := s.rooms.ListExcludingStatus(ctx, domain.RoomMaintenance)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(ctx, list)
}

func (s *Service) withStatuses(ctx context.Context, list []domain.Room) ([]RoomWithStatus, error) {
	occupied, err := s.reservations.OccupiedRoomIDs(ctx, today())
	if err != nil {
		return nil, err
	}

	out := make([]RoomWithStatus, 0, len(list))
	for _, room := range list {
		out = append(out, RoomWithStatus{
			Room:            room,
			EffectiveStatus: effectiveStatus(room, occupied),
		})
	}
	return out, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if !validBaseStatus(room.Status) || room.NightlyRate <= 0 || room.Capacity <= 0 {
		return nil, ErrValidation
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if !validBaseStatus(room.Status) || room.NightlyRate <= 0 || room.Capacity <= 0 {
		return nil, ErrValidation
	}

	existing, err := s.rooms.GetByID(ctx, room.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	room.CreatedAt = existing.CreatedAt

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes a room unless a confirmed reservation still
// references it.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	cnt, err := s.reservations.CountConfirmedByRoom(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasActiveReservations
	}

	affected, err := s.rooms.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// validBaseStatus accepts only storable statuses; occupied is derived
// and must never be written.
func validBaseStatus(st domain.RoomStatus) bool {
	return st == domain.RoomAvailable || st == domain.RoomMaintenance
}
