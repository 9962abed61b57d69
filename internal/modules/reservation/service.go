package reservation

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
	reservations ReservationRepository
	rooms        RoomRepository
	locks        *keymutex.KeyMutex
	notifs       ChangeBroadcaster
}

func NewService(
	reservations ReservationRepository,
	rooms RoomRepository,
	locks *keymutex.KeyMutex,
	notifs ChangeBroadcaster,
) *Service {
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		locks:        locks,
		notifs:       notifs,
	}
}

func roomKey(roomID int64) string {
	return fmt.Sprintf("room:%d", roomID)
}

// CreateReservation books a room for the given window. The
// availability re-check and the insert run inside the per-room critical
// section, so two racing requests for the same room cannot both pass
// the conflict scan.
func (s *Service) CreateReservation(ctx context.Context, in CreateInput) (*domain.Reservation, error) {
	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if room.Status != domain.RoomAvailable {
		return nil, ErrRoomUnavailable
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	if nights <= 0 {
		return nil, ErrInvalidDates
	}

	s.locks.Lock(roomKey(in.RoomID))
	defer s.locks.Unlock(roomKey(in.RoomID))

	conflicts, err := s.reservations.CountConflicts(ctx, in.RoomID, in.CheckIn, in.CheckOut, 0)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, ErrDateConflict
	}

	r := &domain.Reservation{
		RoomID:     in.RoomID,
		UserID:     in.UserID,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		GuestPhone: in.GuestPhone,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Total:      Total(room.NightlyRate, nights),
		Notes:      in.Notes,
		Status:     domain.ReservationConfirmed,
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		if isConstraintConflict(err) {
			return nil, ErrDateConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.Broadcast(ws.Message{Kind: ws.KindReservationCreated, ID: r.ID, At: time.Now().UTC()})
	}

	return r, nil
}

// UpdateReservation rewrites a reservation. The room rate is
// re-resolved, availability is re-checked excluding the reservation
// itself, and the total is recomputed; absent fields stay untouched.
func (s *Service) UpdateReservation(ctx context.Context, id, callerID int64, role domain.Role, in UpdateInput) (*domain.Reservation, error) {
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Clients only see their own rows; a foreign id looks absent.
	if role != domain.RoleAdmin && existing.UserID != callerID {
		return nil, ErrNotFound
	}

	roomID := existing.RoomID
	if in.RoomID != nil {
		roomID = *in.RoomID
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	checkIn := existing.CheckIn
	if in.CheckIn != nil {
		checkIn = *in.CheckIn
	}
	checkOut := existing.CheckOut
	if in.CheckOut != nil {
		checkOut = *in.CheckOut
	}

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDates
	}

	s.locks.Lock(roomKey(roomID))
	defer s.locks.Unlock(roomKey(roomID))

	conflicts, err := s.reservations.CountConflicts(ctx, roomID, checkIn, checkOut, id)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, ErrDateConflict
	}

	total := Total(room.NightlyRate, nights)
	changes := repository.ReservationChanges{
		RoomID:     in.RoomID,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		GuestPhone: in.GuestPhone,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Total:      &total,
		Notes:      in.Notes,
	}

	if err := s.reservations.Update(ctx, id, changes); err != nil {
		if isConstraintConflict(err) {
			return nil, ErrDateConflict
		}
		return nil, err
	}

	updated, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.Broadcast(ws.Message{Kind: ws.KindReservationUpdated, ID: id, At: time.Now().UTC()})
	}

	return updated, nil
}

// CancelReservation flips a confirmed reservation to cancelled. The row
// is kept for reporting. Cancelling an absent, foreign, or
// already-cancelled reservation reports ErrNotFound: there is nothing
// left to cancel.
func (s *Service) CancelReservation(ctx context.Context, id, callerID int64, role domain.Role) (*domain.Reservation, error) {
	ownerFilter := callerID
	if role == domain.RoleAdmin {
		ownerFilter = 0
	}

	affected, err := s.reservations.CancelConfirmed(ctx, id, ownerFilter)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	cancelled, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.Broadcast(ws.Message{Kind: ws.KindReservationCancelled, ID: id, At: time.Now().UTC()})
	}

	return cancelled, nil
}

// GetReservation returns one reservation under the ownership rule.
func (s *Service) GetReservation(ctx context.Context, id, callerID int64, role domain.Role) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != domain.RoleAdmin && r.UserID != callerID {
		return nil, ErrNotFound
	}
	return r, nil
}

// ListReservations returns all reservations for admins and the caller's
// own for clients, newest first.
func (s *Service) ListReservations(ctx context.Context, callerID int64, role domain.Role) ([]repository.ReservationDetails, error) {
	if role == domain.RoleAdmin {
		return s.reservations.ListAllWithDetails(ctx)
	}
	return s.reservations.ListByUserWithDetails(ctx, callerID)
}

// CheckAvailability reports whether the room is free for the window.
// Reads take no lock; the create/update paths re-validate inside the
// critical section regardless of what an earlier check observed.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	conflicts, err := s.reservations.CountConflicts(ctx, roomID, start, end, 0)
	if err != nil {
		return false, err
	}
	return conflicts == 0, nil
}

// isConstraintConflict recognizes a storage-level exclusion or
// uniqueness violation so postgres deployments carrying the
// no-overbooking constraint surface it as a regular date conflict.
func isConstraintConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
