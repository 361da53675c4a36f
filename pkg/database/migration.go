package database

import (
	"github.com/daycarehub/backend/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Daycare{},
		&model.Favorite{},
		&model.Application{},
		&model.ContactLog{},
		&model.Message{},
	)
}
