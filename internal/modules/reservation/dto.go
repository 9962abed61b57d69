package reservation

import "time"

type CreateReservationRequest struct {
	RoomID     int64  `json:"room_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
	GuestPhone string `json:"guest_phone"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateReservationRequest struct {
	RoomID     *int64  `json:"room_id"`
	GuestName  *string `json:"guest_name"`
	GuestEmail *string `json:"guest_email"`
	GuestPhone *string `json:"guest_phone"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Notes      *string `json:"notes"`
}

// CreateInput is the already-typed form of a create request the
// service consumes; handlers own the date parsing.
type CreateInput struct {
	RoomID     int64
	UserID     int64
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Notes      string
}

// UpdateInput carries the optionally-present field changes of an
// update. A nil field means "no change".
type UpdateInput struct {
	RoomID     *int64
	GuestName  *string
	GuestEmail *string
	GuestPhone *string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Notes      *string
}
