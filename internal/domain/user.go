package domain

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is one of the known roles. Role is a closed
// enum; anything else in a token or a row is rejected, not defaulted.
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	DNI          string    `json:"dni,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
