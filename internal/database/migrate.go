package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// Migrate creates or updates the tables owned by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Assignment{}, &models.FilterPreference{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
