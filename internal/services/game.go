package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	gameStatePresenting  = "presenting"
	gameStateResultShown = "result_shown"
	gameStateComplete    = "complete"

	gameCandidateLimit = 50
	gameSessionTTL     = 30 * time.Minute
)

// GameService runs the price-guessing game. Sessions are ephemeral and
// live only in memory; a session that completes writes a single
// GameScore row and updates the player's best-score watermark.
type GameService struct {
	db      *gorm.DB
	scoring *ScoringService
	lookups *LookupService

	mu       sync.Mutex
	sessions map[string]*gameSession
}

type gameSession struct {
	id         string
	userID     uint // 0 for anonymous players
	category   string
	seed       int64
	listings   []models.Listing // shuffled once, frozen for the session
	current    int
	state      string
	cumulative int
	lastResult *RoundOutcome
	saved      bool
	lastActive time.Time
}

type RoundListing struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images,omitempty"`
	City        string   `json:"city,omitempty"`
	Detail      string   `json:"detail,omitempty"`
}

type RoundOutcome struct {
	Points      int     `json:"points"`
	Tier        string  `json:"tier"`
	PercentOff  float64 `json:"percent_off"`
	Guess       float64 `json:"guess"`
	ActualPrice float64 `json:"actual_price"`
}

type GameState struct {
	SessionID       string        `json:"session_id"`
	Category        string        `json:"category"`
	State           string        `json:"state"`
	Round           int           `json:"round"`
	TotalRounds     int           `json:"total_rounds"`
	CumulativeScore int           `json:"cumulative_score"`
	Listing         *RoundListing `json:"listing,omitempty"`
	Result          *RoundOutcome `json:"result,omitempty"`
	ScoreSaved      bool          `json:"score_saved"`
	BestScore       int           `json:"best_score,omitempty"`
}

func NewGameService(db *gorm.DB, scoring *ScoringService, lookups *LookupService) *GameService {
	return &GameService{
		db:       db,
		scoring:  scoring,
		lookups:  lookups,
		sessions: make(map[string]*gameSession),
	}
}

// fetchCandidates loads up to gameCandidateLimit approved listings for
// the category. Listings without a positive price never enter the pool.
func (s *GameService) fetchCandidates(category string) ([]models.Listing, error) {
	q := s.db.Where("status = ? AND price > 0", models.ListingStatusApproved)
	if category != models.CategoryAll {
		q = q.Where("category = ?", category)
	}

	var listings []models.Listing
	if err := q.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).Limit(gameCandidateLimit).Find(&listings).Error; err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNoCandidates
	}
	return listings, nil
}

func shuffleListings(listings []models.Listing, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(listings), func(i, j int) {
		listings[i], listings[j] = listings[j], listings[i]
	})
}

// Start opens a new session for the category ("all" is a wildcard) and
// presents the first round.
func (s *GameService) Start(userID uint, category string) (*GameState, error) {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return nil, ErrInvalidInput
	}

	listings, err := s.fetchCandidates(category)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	shuffleListings(listings, seed)

	sess := &gameSession{
		id:         uuid.NewString(),
		userID:     userID,
		category:   category,
		seed:       seed,
		listings:   listings,
		state:      gameStatePresenting,
		lastActive: time.Now(),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return s.stateView(sess), nil
}

// Guess scores the submitted price against the current listing. The raw
// input is parsed here so malformed guesses are rejected before any
// state changes.
func (s *GameService) Guess(sessionID, rawGuess string) (*GameState, error) {
	guess, err := strconv.ParseFloat(strings.TrimSpace(rawGuess), 64)
	if err != nil || guess < 0 {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.state != gameStatePresenting {
		return nil, errors.New("no round is awaiting a guess")
	}

	actual := sess.listings[sess.current].Price
	result, err := s.scoring.Score(guess, actual)
	if err != nil {
		return nil, err
	}

	sess.cumulative += result.Points
	sess.lastResult = &RoundOutcome{
		Points:      result.Points,
		Tier:        result.Tier,
		PercentOff:  result.PercentOff,
		Guess:       guess,
		ActualPrice: actual,
	}
	sess.state = gameStateResultShown
	sess.lastActive = time.Now()

	return s.stateView(sess), nil
}

// Next advances past a shown result: either the next round, or session
// completion when the current listing was the last one.
func (s *GameService) Next(sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.state != gameStateResultShown {
		return nil, errors.New("no result to advance from")
	}
	sess.lastActive = time.Now()

	if sess.current < len(sess.listings)-1 {
		sess.current++
		sess.state = gameStatePresenting
		sess.lastResult = nil
		return s.stateView(sess), nil
	}

	sess.state = gameStateComplete
	s.finishLocked(sess)
	return s.stateView(sess), nil
}

// PlayAgain restarts a completed session with the same category: a
// fresh fetch and a fresh shuffle, never a replay of the old order.
func (s *GameService) PlayAgain(sessionID string) (*GameState, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if sess.state != gameStateComplete {
		s.mu.Unlock()
		return nil, errors.New("session is still in progress")
	}
	category := sess.category
	userID := sess.userID
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return s.Start(userID, category)
}

func (s *GameService) State(sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.stateView(sess), nil
}

// finishLocked persists the session outcome: at most one score row per
// session, only for known players with a positive score, and a
// monotonic best-score watermark.
func (s *GameService) finishLocked(sess *gameSession) {
	if sess.saved || sess.userID == 0 || sess.cumulative <= 0 {
		return
	}

	score := models.GameScore{UserID: sess.userID, Score: sess.cumulative}
	if err := s.db.Create(&score).Error; err != nil {
		// Leave saved unset so a retry of Next cannot double-write:
		// the state is already complete, finish runs once.
		return
	}
	sess.saved = true

	s.db.Model(&models.User{}).
		Where("id = ? AND best_game_score < ?", sess.userID, sess.cumulative).
		Update("best_game_score", sess.cumulative)
}

func (s *GameService) sweepLocked() {
	cutoff := time.Now().Add(-gameSessionTTL)
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (s *GameService) stateView(sess *gameSession) *GameState {
	state := &GameState{
		SessionID:       sess.id,
		Category:        sess.category,
		State:           sess.state,
		Round:           sess.current + 1,
		TotalRounds:     len(sess.listings),
		CumulativeScore: sess.cumulative,
		Result:          sess.lastResult,
		ScoreSaved:      sess.saved,
	}

	if sess.state == gameStatePresenting {
		state.Listing = s.presentListing(&sess.listings[sess.current])
	}
	if sess.state == gameStateComplete && sess.userID != 0 {
		var user models.User
		if err := s.db.First(&user, sess.userID).Error; err == nil {
			state.BestScore = user.BestGameScore
		}
	}
	return state
}

// presentListing builds the obscured round view: no price, taxonomy ids
// resolved to display names where possible. Resolution failures fall
// back to the raw identifiers and never block the round.
func (s *GameService) presentListing(l *models.Listing) *RoundListing {
	view := &RoundListing{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
	}
	for _, img := range l.Images {
		view.Images = append(view.Images, img.URL)
	}

	if l.CityID != nil {
		if name, err := s.lookups.CityName(*l.CityID); err == nil {
			view.City = name
		}
	}

	switch {
	case l.VehicleMakeID != nil && l.VehicleModelID != nil:
		name, err := s.lookups.ResolveVehicle(*l.VehicleMakeID, *l.VehicleModelID)
		if err != nil {
			name = fmt.Sprintf("%d/%d", *l.VehicleMakeID, *l.VehicleModelID)
		}
		view.Detail = name
	case l.PhoneBrandID != nil && l.PhoneModelID != nil:
		name, err := s.lookups.ResolvePhone(*l.PhoneBrandID, *l.PhoneModelID)
		if err != nil {
			name = fmt.Sprintf("%d/%d", *l.PhoneBrandID, *l.PhoneModelID)
		}
		view.Detail = name
	}
	return view
}
