package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID         int64             `json:"id"`
	RoomID     int64             `json:"room_id" validate:"required"`
	UserID     int64             `json:"user_id" validate:"required"`
	GuestName  string            `json:"guest_name" validate:"required"`
	GuestEmail string            `json:"guest_email" validate:"required,email"`
	GuestPhone string            `json:"guest_phone,omitempty"`
	CheckIn    time.Time         `json:"check_in" validate:"required"`
	CheckOut   time.Time         `json:"check_out" validate:"required"`
	Total      float64           `json:"total"`
	Notes      string            `json:"notes,omitempty"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
