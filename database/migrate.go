package database

import (
	"fmt"
	"log"

	"bloodbridge_backend/internal/config"
	"bloodbridge_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с URL из config.yaml
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.Donor{},
		&models.BloodRequest{},
		&models.Notification{},
		&models.DonationRecord{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migration completed")
	return nil
}

// MigrateModels мигрирует модели на переданном подключении.
// Используется тестами с sqlite in-memory.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Donor{},
		&models.BloodRequest{},
		&models.Notification{},
		&models.DonationRecord{},
	)
}
