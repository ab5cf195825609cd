package repository

import (
	"strings"

	"nam3land/internal/domain"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date and installs the partial unique index
// that guards against two active reservations for one (customer, property)
// pair. The index is what catches the race the service-level check cannot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&propertyModel{},
		&reservationModel{},
		&domain.Conversation{},
		&domain.ChatMessage{},
	); err != nil {
		return err
	}

	idx := `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_reservation
		ON reservations (customer_id, property_id)
		WHERE status IN ('pending', 'confirmed')
	`
	return db.Exec(strings.TrimSpace(idx)).Error
}
