package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomMaintenance RoomStatus = "maintenance"
)

// RoomOccupied is never stored; it only appears as a derived effective
// status when a confirmed reservation covers the current date.
const RoomOccupied RoomStatus = "occupied"

type Room struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	NightlyRate float64    `json:"nightly_rate" validate:"required,gt=0"`
	Capacity    int        `json:"capacity" validate:"required,gt=0"`
	Status      RoomStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
