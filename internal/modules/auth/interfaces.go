package auth

import (
	"context"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"
)

// UserRepository defines the persistence operations auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrDNI(ctx context.Context, email, dni string) (bool, error)
	Update(ctx context.Context, id int64, changes repository.UserChanges) error
	DNITakenByOther(ctx context.Context, dni string, userID int64) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, role domain.Role) (string, error)
}
