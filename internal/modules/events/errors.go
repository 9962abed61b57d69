package events

import "errors"

var (
	ErrNotFound          = errors.New("event not found")
	ErrValidation        = errors.New("validation error")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event has reached max capacity")
	ErrNotRegistered     = errors.New("not registered for this event")
)
