package reservation

import "errors"

var (
	ErrNotFound        = errors.New("reservation not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room not open for booking")
	ErrInvalidDates    = errors.New("invalid date range")
	ErrDateConflict    = errors.New("dates conflict with an existing reservation")
)
