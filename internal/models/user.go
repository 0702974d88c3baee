package models

import "time"

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username      string     `gorm:"size:100;not null" json:"username"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	AvatarURL     string     `gorm:"size:500" json:"avatar_url,omitempty"`
	Role          string     `gorm:"size:20;not null;default:'user'" json:"role"`
	Banned        bool       `gorm:"not null;default:false" json:"banned"`
	BanReason     string     `gorm:"size:500" json:"ban_reason,omitempty"`
	BannedAt      *time.Time `json:"banned_at,omitempty"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	BestGameScore int        `gorm:"not null;default:0" json:"best_game_score"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)
