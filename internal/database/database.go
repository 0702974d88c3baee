package database

import (
	"log"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/config"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.ListingImage{},
		&models.GameScore{},
		&models.Notification{},
		&models.City{},
		&models.District{},
		&models.Neighborhood{},
		&models.VehicleMake{},
		&models.VehicleModel{},
		&models.PhoneBrand{},
		&models.PhoneModel{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("database migrated")
}
