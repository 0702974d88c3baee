package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/middleware"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	auth   *services.AuthService
	router *gin.Engine
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Listing{}, &models.ListingImage{},
		&models.GameScore{}, &models.Notification{},
		&models.City{}, &models.District{}, &models.Neighborhood{},
		&models.VehicleMake{}, &models.VehicleModel{},
		&models.PhoneBrand{}, &models.PhoneModel{},
	))

	notifications := services.NewNotificationService(db)
	auth := services.NewAuthService(db, "test-secret", notifications)
	lookups := services.NewLookupService(db)
	listings := services.NewListingService(db, nil)
	game := services.NewGameService(db, services.NewScoringService(), lookups)
	leaderboard := services.NewLeaderboardService(db)
	userAdmin := services.NewUserAdminService(db, notifications)

	gameHandler := NewGameHandler(game, leaderboard)
	listingHandler := NewListingHandler(listings, notifications)
	userAdminHandler := NewUserAdminHandler(userAdmin)

	r := gin.New()

	gameGroup := r.Group("/api/v1/game")
	gameGroup.Use(middleware.OptionalAuth(auth))
	{
		gameGroup.POST("/start", gameHandler.Start)
		gameGroup.POST("/guess", gameHandler.Guess)
		gameGroup.POST("/next", gameHandler.Next)
		gameGroup.GET("/leaderboard", gameHandler.Leaderboard)
	}

	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(auth), middleware.RequireRoles(models.RoleModerator, models.RoleAdmin))
	{
		admin.GET("/listings", listingHandler.ListByStatus)
		admin.DELETE("/users/:id", userAdminHandler.Delete)
	}

	return &testEnv{db: db, auth: auth, router: r}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createUser(t *testing.T, username, role string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createApprovedListing(t *testing.T, ownerID uint, category string, price float64) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		UserID:   ownerID,
		Title:    "test listing",
		Price:    price,
		Currency: "TRY",
		Category: category,
		Status:   models.ListingStatusApproved,
	}
	require.NoError(t, e.db.Create(listing).Error)
	return listing
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
