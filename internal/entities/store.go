package entities

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Audiobook struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Title           string   `gorm:"size:200;not null" json:"title"`
	Author          string   `gorm:"size:100;not null" json:"author"`
	Description     string   `gorm:"type:text" json:"description"`
	CoverURL        string   `gorm:"size:2048" json:"cover_url"`
	AudioURL        string   `gorm:"size:2048" json:"audio_url"`
	DurationSeconds *int     `gorm:"check:duration_seconds >= 0" json:"duration_seconds"`
	Price           *float64 `gorm:"check:price >= 0" json:"price"`
}

// Purchase records that a user bought an audiobook. UserID and AudiobookID
// are plain foreign key columns; resolve them through the repositories.
type Purchase struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_purchases_user_audiobook" json:"user_id"`
	AudiobookID  uint      `gorm:"not null;uniqueIndex:idx_purchases_user_audiobook" json:"audiobook_id"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
}

// PlaybackProgress is the last known playback offset for a user and audiobook.
// There is at most one row per pair.
type PlaybackProgress struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_progress_user_audiobook" json:"user_id"`
	AudiobookID     uint      `gorm:"not null;uniqueIndex:idx_progress_user_audiobook" json:"audiobook_id"`
	PositionSeconds int       `gorm:"not null;default:0;check:position_seconds >= 0" json:"position_seconds"`
	LastUpdate      time.Time `gorm:"not null" json:"last_update"`
}

func (PlaybackProgress) TableName() string {
	return "playback_progresses"
}
