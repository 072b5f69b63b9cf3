package database

import (
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

// Migrate creates the schema if it does not exist. Safe to run at every
// process start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
	)
}
