package models

import "time"

// GameScore is insert-only: one row per completed game session.
type GameScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
