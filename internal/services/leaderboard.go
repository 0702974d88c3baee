package services

import (
	"time"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"gorm.io/gorm"
)

const leaderboardLimit = 10

// placeholder identity for score rows whose profile has been deleted.
const unknownPlayerName = "Bilinmeyen kullanıcı"

type LeaderboardService struct {
	db *gorm.DB
}

type LeaderboardEntry struct {
	Position  int       `json:"position"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// TopScores returns the highest scores recorded since monthStart,
// capped at limit. Ties keep insertion order. Scores whose user no
// longer resolves are shown with a placeholder name, not dropped.
func (s *LeaderboardService) TopScores(monthStart time.Time, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = leaderboardLimit
	}

	var scores []models.GameScore
	err := s.db.Where("created_at >= ?", monthStart).
		Order("score DESC").
		Order("id ASC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(scores))
	for _, sc := range scores {
		userIDs = append(userIDs, sc.UserID)
	}

	usersByID := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	entries := make([]LeaderboardEntry, len(scores))
	for i, sc := range scores {
		entry := LeaderboardEntry{
			Position:  i + 1,
			UserID:    sc.UserID,
			Username:  unknownPlayerName,
			Score:     sc.Score,
			CreatedAt: sc.CreatedAt,
		}
		if u, ok := usersByID[sc.UserID]; ok {
			entry.Username = u.Username
			entry.AvatarURL = u.AvatarURL
		}
		entries[i] = entry
	}
	return entries, nil
}

// MonthlyTop is the default leaderboard: top 10 since the first of the
// current month.
func (s *LeaderboardService) MonthlyTop() ([]LeaderboardEntry, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.TopScores(monthStart, leaderboardLimit)
}
