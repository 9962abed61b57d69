package repository

import (
	"context"
	"testing"
	"time"

	"hotelparadise/internal/database"
	"hotelparadise/internal/domain"

	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (*RoomRepository, *ReservationRepository) {
	t.Helper()

	db, err := database.ConnectQuiet(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return NewRoomRepository(db), NewReservationRepository(db)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedConfirmed(t *testing.T, res *ReservationRepository, roomID int64, in, out time.Time) *domain.Reservation {
	t.Helper()

	r := &domain.Reservation{
		RoomID:     roomID,
		UserID:     1,
		GuestName:  "Guest",
		GuestEmail: "guest@mail.com",
		CheckIn:    in,
		CheckOut:   out,
		Total:      100,
		Status:     domain.ReservationConfirmed,
	}
	require.NoError(t, res.Create(context.Background(), r))
	return r
}

func TestCountConflicts_InclusiveBoundaries(t *testing.T) {
	rooms, res := setupRepos(t)
	ctx := context.Background()

	room := &domain.Room{Number: "101", Type: "double", NightlyRate: 100, Capacity: 2, Status: domain.RoomAvailable}
	require.NoError(t, rooms.Create(ctx, room))

	booked := seedConfirmed(t, res, room.ID, date(2024, 1, 10), date(2024, 1, 15))

	cases := []struct {
		name       string
		start, end time.Time
		want       int64
	}{
		{"before", date(2024, 1, 1), date(2024, 1, 5), 0},
		{"touching start", date(2024, 1, 5), date(2024, 1, 10), 1},
		{"inside", date(2024, 1, 11), date(2024, 1, 13), 1},
		{"touching end", date(2024, 1, 15), date(2024, 1, 20), 1},
		{"day after end", date(2024, 1, 16), date(2024, 1, 20), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cnt, err := res.CountConflicts(ctx, room.ID, tc.start, tc.end, 0)
			require.NoError(t, err)
			require.Equal(t, tc.want, cnt)
		})
	}

	t.Run("excludes the given id", func(t *testing.T) {
		cnt, err := res.CountConflicts(ctx, room.ID, date(2024, 1, 10), date(2024, 1, 15), booked.ID)
		require.NoError(t, err)
		require.Equal(t, int64(0), cnt)
	})

	t.Run("cancelled rows never count", func(t *testing.T) {
		affected, err := res.CancelConfirmed(ctx, booked.ID, 0)
		require.NoError(t, err)
		require.Equal(t, int64(1), affected)

		cnt, err := res.CountConflicts(ctx, room.ID, date(2024, 1, 10), date(2024, 1, 15), 0)
		require.NoError(t, err)
		require.Equal(t, int64(0), cnt)
	})
}

func TestOccupiedRoomIDs_WindowCoverage(t *testing.T) {
	rooms, res := setupRepos(t)
	ctx := context.Background()

	room := &domain.Room{Number: "101", Type: "double", NightlyRate: 100, Capacity: 2, Status: domain.RoomAvailable}
	require.NoError(t, rooms.Create(ctx, room))

	seedConfirmed(t, res, room.ID, date(2024, 3, 10), date(2024, 3, 12))

	occupiedDuring, err := res.OccupiedRoomIDs(ctx, date(2024, 3, 11))
	require.NoError(t, err)
	require.True(t, occupiedDuring[room.ID])

	// Checkout day still counts under inclusive boundaries.
	occupiedCheckout, err := res.OccupiedRoomIDs(ctx, date(2024, 3, 12))
	require.NoError(t, err)
	require.True(t, occupiedCheckout[room.ID])

	// The day after the stay the room is free again.
	occupiedAfter, err := res.OccupiedRoomIDs(ctx, date(2024, 3, 13))
	require.NoError(t, err)
	require.False(t, occupiedAfter[room.ID])
}
