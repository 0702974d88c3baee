package services

import (
	"fmt"
	"testing"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, ownerID uint, category string, price float64, status string) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		UserID:   ownerID,
		Title:    fmt.Sprintf("%s listing at %.0f", category, price),
		Price:    price,
		Currency: "TRY",
		Category: category,
		Status:   status,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

// recordingFeed captures change events instead of pushing them over
// websockets.
type recordingFeed struct {
	events []string
}

func (f *recordingFeed) BroadcastChange(table, action string, id uint) {
	f.events = append(f.events, fmt.Sprintf("%s/%s/%d", table, action, id))
}
