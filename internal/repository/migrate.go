package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every persisted record
// kind. The attendee unique index doubles as the storage-level backstop
// against duplicate enrollment under concurrency.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&reservationModel{},
		&eventModel{},
		&eventAttendeeModel{},
	)
}
