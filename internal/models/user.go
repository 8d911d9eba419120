package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	ExternalIDHash string    `gorm:"uniqueIndex;size:64;not null" json:"-"` // digest of the OAuth subject id, never the raw id
	AvatarRef      string    `json:"avatar_ref"`
	CreatedAt      time.Time `json:"member_since"`
	// No DeletedAt for hard delete
}
