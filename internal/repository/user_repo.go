package repository

import (
	"context"
	"time"

	"hotelparadise/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	DNI          string    `gorm:"column:dni"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		DNI:          m.DNI,
		Phone:        m.Phone,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		DNI:          u.DNI,
		Phone:        u.Phone,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// UserChanges is the closed set of profile columns an update may touch.
// A nil field means "leave the column alone".
type UserChanges struct {
	Name  *string
	DNI   *string
	Phone *string
}

func (c UserChanges) columns() map[string]any {
	cols := map[string]any{}
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.DNI != nil {
		cols["dni"] = *c.DNI
	}
	if c.Phone != nil {
		cols["phone"] = *c.Phone
	}
	return cols
}

func (r *UserRepository) Update(ctx context.Context, id int64, changes UserChanges) error {
	cols := changes.columns()
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// DNITakenByOther reports whether a different account already claims
// the DNI.
func (r *UserRepository) DNITakenByOther(ctx context.Context, dni string, userID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("dni = ? AND id <> ?", dni, userID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ExistsByEmailOrDNI reports whether another account already claims the
// email or, when dni is non-empty, the DNI.
func (r *UserRepository) ExistsByEmailOrDNI(ctx context.Context, email, dni string) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&userModel{})
	if dni != "" {
		q = q.Where("email = ? OR dni = ?", email, dni)
	} else {
		q = q.Where("email = ?", email)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
