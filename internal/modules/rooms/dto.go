package rooms

import "hotelparadise/internal/domain"

type CreateRoomRequest struct {
	Number      string  `json:"number" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	NightlyRate float64 `json:"nightly_rate" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Status      string  `json:"status"`
}

type UpdateRoomRequest struct {
	Number      string  `json:"number" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	NightlyRate float64 `json:"nightly_rate" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Status      string  `json:"status" binding:"required"`
}

// RoomWithStatus is a room together with its derived effective status,
// the shape the directory endpoints return.
type RoomWithStatus struct {
	domain.Room
	EffectiveStatus domain.RoomStatus `json:"effective_status"`
}
