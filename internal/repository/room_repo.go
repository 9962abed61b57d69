package repository

import (
	"context"
	"time"

	"hotelparadise/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Number      string    `gorm:"column:number;uniqueIndex"`
	Type        string    `gorm:"column:type"`
	NightlyRate float64   `gorm:"column:nightly_rate"`
	Capacity    int       `gorm:"column:capacity"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		Number:      m.Number,
		Type:        m.Type,
		NightlyRate: m.NightlyRate,
		Capacity:    m.Capacity,
		Status:      domain.RoomStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:          r.ID,
		Number:      r.Number,
		Type:        r.Type,
		NightlyRate: r.NightlyRate,
		Capacity:    r.Capacity,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).Order("number").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// ListExcludingStatus returns rooms whose base status differs from the
// given one, used by the public directory to hide maintenance rooms.
func (r *RoomRepository) ListExcludingStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).
		Where("status <> ?", string(status)).
		Order("number").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	return tx.RowsAffected, tx.Error
}

func (r *RoomRepository) CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("status = ?", string(status)).
		Count(&cnt).Error
	return cnt, err
}

func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&roomModel{}).Count(&cnt).Error
	return cnt, err
}
