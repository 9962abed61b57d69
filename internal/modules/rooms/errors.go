package rooms

import "errors"

var (
	ErrNotFound              = errors.New("room not found")
	ErrValidation            = errors.New("validation error")
	ErrHasActiveReservations = errors.New("room has confirmed reservations")
)
