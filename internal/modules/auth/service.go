package auth

import (
	"context"
	"errors"
	"strings"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type Service struct {
	users UserRepository
	jwt   jwtService
}

func NewService(users UserRepository, jwt jwtService) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a client account. Admin accounts are provisioned by
// the seeder, never through this endpoint.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.ExistsByEmailOrDNI(ctx, email, req.DNI)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		DNI:          req.DNI,
		Phone:        req.Phone,
		Role:         domain.RoleClient,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// UpdateProfile applies a partial edit to the caller's own profile. A
// DNI move is refused when another account already claims it.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	if req.Name == nil && req.DNI == nil && req.Phone == nil {
		return nil, ErrNoFields
	}

	changes := repository.UserChanges{DNI: req.DNI, Phone: req.Phone}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNoFields
		}
		changes.Name = &name
	}

	if req.DNI != nil {
		taken, err := s.users.DNITakenByOther(ctx, *req.DNI, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDNITaken
		}
	}

	if err := s.users.Update(ctx, userID, changes); err != nil {
		return nil, err
	}

	return s.Me(ctx, userID)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
