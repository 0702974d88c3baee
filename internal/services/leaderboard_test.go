package services

import (
	"testing"
	"time"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrderingAndTies(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	carol := createUser(t, db, "carol", models.RoleUser)

	require.NoError(t, db.Create(&models.GameScore{UserID: alice.ID, Score: 2000}).Error)
	require.NoError(t, db.Create(&models.GameScore{UserID: bob.ID, Score: 3000}).Error)
	// carol ties alice but was inserted later: alice ranks first.
	require.NoError(t, db.Create(&models.GameScore{UserID: carol.ID, Score: 2000}).Error)

	svc := NewLeaderboardService(db)
	monthStart := time.Now().Add(-time.Hour)

	entries, err := svc.TopScores(monthStart, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Equal(t, "bob", entries[0].Username)
	require.Equal(t, 3000, entries[0].Score)
	require.Equal(t, "alice", entries[1].Username)
	require.Equal(t, "carol", entries[2].Username)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, 3, entries[2].Position)
}

func TestLeaderboardIsIdempotent(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.GameScore{UserID: alice.ID, Score: 100 * (i + 1)}).Error)
	}

	svc := NewLeaderboardService(db)
	monthStart := time.Now().Add(-time.Hour)

	first, err := svc.TopScores(monthStart, 10)
	require.NoError(t, err)
	second, err := svc.TopScores(monthStart, 10)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLeaderboardLimitAndWindow(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)

	old := models.GameScore{UserID: alice.ID, Score: 9999}
	require.NoError(t, db.Create(&old).Error)
	// Backdate the row out of the window.
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.GameScore{UserID: alice.ID, Score: 100 + i}).Error)
	}

	svc := NewLeaderboardService(db)
	monthStart := time.Now().Add(-time.Hour)

	entries, err := svc.TopScores(monthStart, 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	for _, e := range entries {
		require.NotEqual(t, 9999, e.Score, "score outside the window leaked in")
	}
}

func TestLeaderboardPlaceholderForDeletedUser(t *testing.T) {
	db := setupDB(t)
	ghost := createUser(t, db, "ghost", models.RoleUser)
	require.NoError(t, db.Create(&models.GameScore{UserID: ghost.ID, Score: 1500}).Error)
	require.NoError(t, db.Delete(&models.User{}, ghost.ID).Error)

	svc := NewLeaderboardService(db)

	entries, err := svc.TopScores(time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, unknownPlayerName, entries[0].Username)
	require.Equal(t, 1500, entries[0].Score)
}
