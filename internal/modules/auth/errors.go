package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email or dni already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDNITaken           = errors.New("dni already registered to another account")
	ErrNoFields           = errors.New("no fields to update")
)
