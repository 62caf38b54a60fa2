package db

import (
	"fmt"

	"github.com/vendora/vendora-backend/internal/models"
	"gorm.io/gorm"
)

// Migrate applies schema migrations for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.StoreSettings{},
		&models.Admin{},
	)
}
