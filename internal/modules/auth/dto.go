package auth

import "hotelparadise/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	DNI      string `json:"dni"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile edit. Absent fields
// are left untouched; email and role are never editable here.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	DNI   *string `json:"dni"`
	Phone *string `json:"phone"`
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
