package repository

import (
	"context"
	"time"

	"hotelparadise/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	RoomID     int64     `gorm:"column:room_id;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	GuestName  string    `gorm:"column:guest_name"`
	GuestEmail string    `gorm:"column:guest_email"`
	GuestPhone string    `gorm:"column:guest_phone"`
	CheckIn    time.Time `gorm:"column:check_in"`
	CheckOut   time.Time `gorm:"column:check_out"`
	Total      float64   `gorm:"column:total"`
	Notes      *string   `gorm:"column:notes"`
	Status     string    `gorm:"column:status;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Reservation{
		ID:         m.ID,
		RoomID:     m.RoomID,
		UserID:     m.UserID,
		GuestName:  m.GuestName,
		GuestEmail: m.GuestEmail,
		GuestPhone: m.GuestPhone,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		Total:      m.Total,
		Notes:      notes,
		Status:     domain.ReservationStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return reservationModel{
		ID:         r.ID,
		RoomID:     r.RoomID,
		UserID:     r.UserID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Total:      r.Total,
		Notes:      notes,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// CountConflicts counts confirmed reservations on the room whose window
// intersects [start, end] under inclusive boundaries on both ends.
// excludeID, when non-zero, leaves one reservation out of the scan so a
// row being updated does not conflict with itself.
func (r *ReservationRepository) CountConflicts(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("room_id = ?", roomID).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Where("check_in <= ? AND check_out >= ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// ReservationChanges is the closed set of columns an update may touch.
// A nil field means "leave the column alone", never "set to null".
type ReservationChanges struct {
	RoomID     *int64
	GuestName  *string
	GuestEmail *string
	GuestPhone *string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Total      *float64
	Notes      *string
}

func (c ReservationChanges) columns() map[string]any {
	cols := map[string]any{}
	if c.RoomID != nil {
		cols["room_id"] = *c.RoomID
	}
	if c.GuestName != nil {
		cols["guest_name"] = *c.GuestName
	}
	if c.GuestEmail != nil {
		cols["guest_email"] = *c.GuestEmail
	}
	if c.GuestPhone != nil {
		cols["guest_phone"] = *c.GuestPhone
	}
	if c.CheckIn != nil {
		cols["check_in"] = *c.CheckIn
	}
	if c.CheckOut != nil {
		cols["check_out"] = *c.CheckOut
	}
	if c.Total != nil {
		cols["total"] = *c.Total
	}
	if c.Notes != nil {
		cols["notes"] = *c.Notes
	}
	return cols
}

func (r *ReservationRepository) Update(ctx context.Context, id int64, changes ReservationChanges) error {
	cols := changes.columns()
	if len(cols) == 0 {
		return nil
	}
	cols["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// CancelConfirmed flips a still-confirmed reservation to cancelled and
// reports how many rows changed. Zero means the reservation is absent,
// belongs to someone else, or was already cancelled. userID 0 skips the
// ownership filter (admin path).
func (r *ReservationRepository) CancelConfirmed(ctx context.Context, id, userID int64) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Where("status = ?", string(domain.ReservationConfirmed))
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	tx := q.Updates(map[string]any{
		"status":     string(domain.ReservationCancelled),
		"updated_at": time.Now().UTC(),
	})
	return tx.RowsAffected, tx.Error
}

// ReservationDetails is a reservation row joined with its room summary,
// the shape the list endpoints return.
type ReservationDetails struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	UserID     int64     `json:"user_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

const reservationDetailsSelect = `
SELECT r.id, r.room_id, ro.number AS room_number, ro.type AS room_type,
       r.user_id, r.guest_name, r.guest_email,
       r.check_in, r.check_out, r.total, r.status, r.created_at
FROM reservations r
JOIN rooms ro ON ro.id = r.room_id
`

func (r *ReservationRepository) ListAllWithDetails(ctx context.Context) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	tx := r.db.WithContext(ctx).
		Raw(reservationDetailsSelect + "ORDER BY r.created_at DESC").
		Scan(&rows)
	return rows, tx.Error
}

func (r *ReservationRepository) ListByUserWithDetails(ctx context.Context, userID int64) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	tx := r.db.WithContext(ctx).
		Raw(reservationDetailsSelect+"WHERE r.user_id = ? ORDER BY r.created_at DESC", userID).
		Scan(&rows)
	return rows, tx.Error
}

// OccupiedRoomIDs returns the ids of rooms covered by a confirmed
// reservation at the given date, for the derived directory status.
func (r *ReservationRepository) OccupiedRoomIDs(ctx context.Context, at time.Time) (map[int64]bool, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Where("check_in <= ? AND check_out >= ?", at, at).
		Distinct().
		Pluck("room_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *ReservationRepository) CountConfirmedByRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("room_id = ?", roomID).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Count(&cnt).Error
	return cnt, err
}

// CountOccupiedRoomsBetween counts distinct rooms covered by a
// confirmed reservation intersecting [from, to], inclusive on both
// ends like the conflict scan.
func (r *ReservationRepository) CountOccupiedRoomsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Where("check_in <= ? AND check_out >= ?", to, from).
		Distinct("room_id").
		Count(&cnt).Error
	return cnt, err
}

// RoomOccupancyDetail is a room row with the guest currently staying in
// it, empty when the room is free.
type RoomOccupancyDetail struct {
	RoomNumber   string `json:"room_number"`
	RoomType     string `json:"room_type"`
	Status       string `json:"status"`
	CurrentGuest string `json:"current_guest"`
}

func (r *ReservationRepository) ListRoomOccupancy(ctx context.Context, at time.Time) ([]RoomOccupancyDetail, error) {
	var rows []RoomOccupancyDetail
	tx := r.db.WithContext(ctx).Raw(`
SELECT ro.number AS room_number, ro.type AS room_type, ro.status,
       COALESCE(r.guest_name, '') AS current_guest
FROM rooms ro
LEFT JOIN reservations r ON r.room_id = ro.id
  AND r.status = ?
  AND r.check_in <= ? AND r.check_out >= ?
ORDER BY ro.number
`, string(domain.ReservationConfirmed), at, at).Scan(&rows)
	return rows, tx.Error
}

// CountActiveAt counts confirmed reservations whose window covers the
// given date.
func (r *ReservationRepository) CountActiveAt(ctx context.Context, at time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("status = ?", string(domain.ReservationConfirmed)).
		Where("check_in <= ? AND check_out >= ?", at, at).
		Count(&cnt).Error
	return cnt, err
}

// RevenueStats aggregates confirmed reservations created in [from, to).
type RevenueStats struct {
	Total   float64
	Count   int64
	Average float64
}

func (r *ReservationRepository) RevenueBetween(ctx context.Context, from, to time.Time) (RevenueStats, error) {
	var row struct {
		Total   float64
		Count   int64
		Average float64
	}
	tx := r.db.WithContext(ctx).Raw(`
SELECT COALESCE(SUM(total), 0)  AS total,
       COUNT(*)                 AS count,
       COALESCE(AVG(total), 0)  AS average
FROM reservations
WHERE status = ? AND created_at >= ? AND created_at < ?
`, string(domain.ReservationConfirmed), from, to).Scan(&row)
	if tx.Error != nil {
		return RevenueStats{}, tx.Error
	}
	return RevenueStats{Total: row.Total, Count: row.Count, Average: row.Average}, nil
}

func (r *ReservationRepository) ListConfirmedBetweenWithDetails(ctx context.Context, from, to time.Time) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	tx := r.db.WithContext(ctx).
		Raw(reservationDetailsSelect+
			"WHERE r.status = ? AND r.created_at >= ? AND r.created_at < ? ORDER BY r.created_at DESC",
			string(domain.ReservationConfirmed), from, to).
		Scan(&rows)
	return rows, tx.Error
}
