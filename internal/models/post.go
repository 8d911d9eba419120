package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"` // author snapshot taken at creation, not kept in sync
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"` // derived cache of the like ledger, moved only alongside ledger writes
	CreatedAt time.Time `json:"timestamp"`
}
