package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// Migrate creates or updates every table. Order matters: referenced tables
// come first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
