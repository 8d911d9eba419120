package models

import (
	"time"
)

// Like is one row of the like ledger. The composite unique index keeps
// at most one row per (post, user) pair even under concurrent toggles.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
