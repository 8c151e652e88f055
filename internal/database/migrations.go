package database

import (
	"gorm.io/gorm"

	"github.com/nebs-hr/noticeboard/internal/models"
)

// AutoMigrate creates or updates the database schema. The users table carries
// no behaviour here; it exists for parity with the wider HR schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Notice{},
		&models.User{},
	)
}
