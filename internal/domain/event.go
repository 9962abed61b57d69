package domain

import "time"

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
	Time        string    `json:"time" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	MaxCapacity int       `json:"max_capacity" validate:"required,gt=0"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventAttendee struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	UserID       int64     `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
