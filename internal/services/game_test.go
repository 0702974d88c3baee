package services

import (
	"strconv"
	"testing"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGameSessionFullFlow(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)

	createListing(t, db, owner.ID, models.CategoryVehicle, 100000, models.ListingStatusApproved)
	createListing(t, db, owner.ID, models.CategoryVehicle, 200000, models.ListingStatusApproved)
	createListing(t, db, owner.ID, models.CategoryVehicle, 50000, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(player.ID, models.CategoryVehicle)
	require.NoError(t, err)
	require.Equal(t, gameStatePresenting, state.State)
	require.Equal(t, 3, state.TotalRounds)
	require.Equal(t, 1, state.Round)
	require.NotNil(t, state.Listing)

	total := 0
	for round := 0; round < 3; round++ {
		// Guess the exact price of the presented listing for a
		// deterministic 1000 points per round.
		var listing models.Listing
		require.NoError(t, db.First(&listing, state.Listing.ID).Error)

		state, err = svc.Guess(state.SessionID, formatPrice(listing.Price))
		require.NoError(t, err)
		require.Equal(t, gameStateResultShown, state.State)
		require.NotNil(t, state.Result)
		require.Equal(t, 1000, state.Result.Points)
		require.Equal(t, TierExcellent, state.Result.Tier)
		total += state.Result.Points
		require.Equal(t, total, state.CumulativeScore)

		state, err = svc.Next(state.SessionID)
		require.NoError(t, err)
	}

	require.Equal(t, gameStateComplete, state.State)
	require.True(t, state.ScoreSaved)
	require.Equal(t, 3000, state.CumulativeScore)
	require.Equal(t, 3000, state.BestScore)

	var scores []models.GameScore
	require.NoError(t, db.Find(&scores).Error)
	require.Len(t, scores, 1)
	require.Equal(t, player.ID, scores[0].UserID)
	require.Equal(t, 3000, scores[0].Score)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, player.ID).Error)
	require.Equal(t, 3000, refreshed.BestGameScore)
}

func TestGameStartNoCandidates(t *testing.T) {
	db := setupDB(t)
	player := createUser(t, db, "player", models.RoleUser)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	_, err := svc.Start(player.ID, models.CategorySport)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestGameExcludesPendingAndFreeListings(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)

	createListing(t, db, owner.ID, models.CategoryPhone, 30000, models.ListingStatusPending)
	createListing(t, db, owner.ID, models.CategoryPhone, 0, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	_, err := svc.Start(player.ID, models.CategoryPhone)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestGameInvalidGuessKeepsState(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)
	createListing(t, db, owner.ID, models.CategoryVehicle, 100000, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(player.ID, models.CategoryAll)
	require.NoError(t, err)

	_, err = svc.Guess(state.SessionID, "not-a-number")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Guess(state.SessionID, "-100")
	require.ErrorIs(t, err, ErrInvalidInput)

	// Round still accepts a valid guess.
	state, err = svc.Guess(state.SessionID, "100000")
	require.NoError(t, err)
	require.Equal(t, 1000, state.Result.Points)
}

func TestGameAnonymousScoreNotPersisted(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	createListing(t, db, owner.ID, models.CategoryVehicle, 100000, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(0, models.CategoryAll)
	require.NoError(t, err)

	state, err = svc.Guess(state.SessionID, "100000")
	require.NoError(t, err)

	state, err = svc.Next(state.SessionID)
	require.NoError(t, err)
	require.Equal(t, gameStateComplete, state.State)
	require.False(t, state.ScoreSaved)

	var count int64
	require.NoError(t, db.Model(&models.GameScore{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGameBestScoreWatermarkIsMonotonic(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)
	require.NoError(t, db.Model(player).Update("best_game_score", 5000).Error)

	createListing(t, db, owner.ID, models.CategoryVehicle, 100000, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(player.ID, models.CategoryAll)
	require.NoError(t, err)
	state, err = svc.Guess(state.SessionID, "100000")
	require.NoError(t, err)
	state, err = svc.Next(state.SessionID)
	require.NoError(t, err)
	require.Equal(t, gameStateComplete, state.State)

	// 1000 < 5000: the watermark must not move down.
	var refreshed models.User
	require.NoError(t, db.First(&refreshed, player.ID).Error)
	require.Equal(t, 5000, refreshed.BestGameScore)
}

func TestGamePlayAgainReshuffles(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)
	for i := 0; i < 5; i++ {
		createListing(t, db, owner.ID, models.CategoryVehicle, float64(10000*(i+1)), models.ListingStatusApproved)
	}

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(player.ID, models.CategoryVehicle)
	require.NoError(t, err)
	firstSession := state.SessionID

	for state.State != gameStateComplete {
		state, err = svc.Guess(state.SessionID, "1")
		require.NoError(t, err)
		state, err = svc.Next(state.SessionID)
		require.NoError(t, err)
	}

	again, err := svc.PlayAgain(firstSession)
	require.NoError(t, err)
	require.NotEqual(t, firstSession, again.SessionID)
	require.Equal(t, gameStatePresenting, again.State)
	require.Equal(t, models.CategoryVehicle, again.Category)
	require.Zero(t, again.CumulativeScore)

	// The old session is gone.
	_, err = svc.State(firstSession)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGamePlayAgainRequiresCompletion(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "seller", models.RoleUser)
	player := createUser(t, db, "player", models.RoleUser)
	createListing(t, db, owner.ID, models.CategoryVehicle, 100000, models.ListingStatusApproved)

	svc := NewGameService(db, NewScoringService(), NewLookupService(db))

	state, err := svc.Start(player.ID, models.CategoryAll)
	require.NoError(t, err)

	_, err = svc.PlayAgain(state.SessionID)
	require.Error(t, err)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	base := make([]models.Listing, 10)
	for i := range base {
		base[i] = models.Listing{ID: uint(i + 1)}
	}

	a := append([]models.Listing(nil), base...)
	b := append([]models.Listing(nil), base...)
	shuffleListings(a, 42)
	shuffleListings(b, 42)
	require.Equal(t, a, b)

	c := append([]models.Listing(nil), base...)
	shuffleListings(c, 43)
	require.NotEqual(t, a, c)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
