package repository

import (
	"context"
	"time"

	"hotelparadise/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date;index"`
	Time        string    `gorm:"column:time"`
	Location    string    `gorm:"column:location"`
	MaxCapacity int       `gorm:"column:max_capacity"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (eventModel) TableName() string { return "events" }

type eventAttendeeModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	EventID      int64     `gorm:"column:event_id;uniqueIndex:idx_event_attendee"`
	UserID       int64     `gorm:"column:user_id;uniqueIndex:idx_event_attendee"`
	RegisteredAt time.Time `gorm:"column:registered_at"`
}

func (eventAttendeeModel) TableName() string { return "event_attendees" }

func toDomainEvent(m eventModel) *domain.Event {
	return &domain.Event{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		Time:        m.Time,
		Location:    m.Location,
		MaxCapacity: m.MaxCapacity,
		CreatedAt:   m.CreatedAt,
	}
}

func toEventModel(e *domain.Event) eventModel {
	return eventModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		MaxCapacity: e.MaxCapacity,
		CreatedAt:   e.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	m := toEventModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEvent(m)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEvent(m), nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (int64, error) {
	m := toEventModel(e)
	tx := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"title":        m.Title,
			"description":  m.Description,
			"date":         m.Date,
			"time":         m.Time,
			"location":     m.Location,
			"max_capacity": m.MaxCapacity,
		})
	return tx.RowsAffected, tx.Error
}

// Delete removes the event together with its attendees.
func (r *EventRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&eventAttendeeModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&eventModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// EventWithStats is an event row with its derived attendance figures.
type EventWithStats struct {
	domain.Event
	AttendeeCount  int64 `json:"attendee_count"`
	RemainingSeats int64 `json:"remaining_seats"`
	UserRegistered bool  `json:"user_registered"`
}

// ListWithStats returns every event (soonest first) with its attendee
// count and, when userID is non-zero, whether that user is registered.
func (r *EventRepository) ListWithStats(ctx context.Context, userID int64) ([]EventWithStats, error) {
	var models []eventModel
	tx := r.db.WithContext(ctx).Order("date, time").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]EventWithStats, 0, len(models))
	for _, m := range models {
		row := EventWithStats{Event: *toDomainEvent(m)}

		cnt, err := r.CountAttendees(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		row.AttendeeCount = cnt
		row.RemainingSeats = int64(m.MaxCapacity) - cnt

		if userID != 0 {
			registered, err := r.IsRegistered(ctx, m.ID, userID)
			if err != nil {
				return nil, err
			}
			row.UserRegistered = registered
		}

		out = append(out, row)
	}
	return out, nil
}

// ListUpcomingWithStats is ListWithStats restricted to events on or
// after the given date, for the public directory.
func (r *EventRepository) ListUpcomingWithStats(ctx context.Context, from time.Time) ([]EventWithStats, error) {
	var models []eventModel
	tx := r.db.WithContext(ctx).
		Where("date >= ?", from).
		Order("date, time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]EventWithStats, 0, len(models))
	for _, m := range models {
		cnt, err := r.CountAttendees(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, EventWithStats{
			Event:          *toDomainEvent(m),
			AttendeeCount:  cnt,
			RemainingSeats: int64(m.MaxCapacity) - cnt,
		})
	}
	return out, nil
}

func (r *EventRepository) CountAttendees(ctx context.Context, eventID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&eventAttendeeModel{}).
		Where("event_id = ?", eventID).
		Count(&cnt).Error
	return cnt, err
}

func (r *EventRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&eventAttendeeModel{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *EventRepository) CreateAttendee(ctx context.Context, a *domain.EventAttendee) error {
	m := eventAttendeeModel{
		EventID:      a.EventID,
		UserID:       a.UserID,
		RegisteredAt: a.RegisteredAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	a.ID = m.ID
	return nil
}

func (r *EventRepository) DeleteAttendee(ctx context.Context, eventID, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&eventAttendeeModel{})
	return tx.RowsAffected, tx.Error
}

// AttendeeDetails is an attendee row joined with the user's contact
// fields, for the admin attendee list.
type AttendeeDetails struct {
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (r *EventRepository) ListAttendeesWithDetails(ctx context.Context, eventID int64) ([]AttendeeDetails, error) {
	var rows []AttendeeDetails
	tx := r.db.WithContext(ctx).Raw(`
SELECT u.id AS user_id, u.name, u.email, ea.registered_at
FROM event_attendees ea
JOIN users u ON u.id = ea.user_id
WHERE ea.event_id = ?
ORDER BY ea.registered_at
`, eventID).Scan(&rows)
	return rows, tx.Error
}

// AttendanceStats aggregates the events in a window: how many were
// scheduled, how many seats they offered and how many were claimed.
type AttendanceStats struct {
	Events    int64
	Seats     int64
	Attendees int64
}

func (r *EventRepository) AttendanceBetween(ctx context.Context, from, to time.Time) (AttendanceStats, error) {
	var s AttendanceStats
	err := r.db.WithContext(ctx).Raw(`
SELECT COUNT(*)                      AS events,
       COALESCE(SUM(max_capacity), 0) AS seats
FROM events
WHERE date >= ? AND date < ?
`, from, to).Scan(&s).Error
	if err != nil {
		return AttendanceStats{}, err
	}

	err = r.db.WithContext(ctx).Raw(`
SELECT COUNT(*)
FROM event_attendees ea
JOIN events e ON e.id = ea.event_id
WHERE e.date >= ? AND e.date < ?
`, from, to).Scan(&s.Attendees).Error
	if err != nil {
		return AttendanceStats{}, err
	}
	return s, nil
}

// ListWithStatsBetween returns the events scheduled in [from, to) with
// their attendance figures, for the monthly report.
func (r *EventRepository) ListWithStatsBetween(ctx context.Context, from, to time.Time) ([]EventWithStats, error) {
	var models []eventModel
	tx := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date, time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]EventWithStats, 0, len(models))
	for _, m := range models {
		cnt, err := r.CountAttendees(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, EventWithStats{
			Event:          *toDomainEvent(m),
			AttendeeCount:  cnt,
			RemainingSeats: int64(m.MaxCapacity) - cnt,
		})
	}
	return out, nil
}

func (r *EventRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("date >= ? AND date < ?", from, to).
		Count(&cnt).Error
	return cnt, err
}
