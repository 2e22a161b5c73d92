package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vacansy/vacansy-api/internal/models"
)

// Connect opens the Postgres connection and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Migration: creates/updates the tables in Postgres automatically.
	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.SavedJob{},
		&models.Application{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
