package utils

import (
	"time"
)

// GetDaysSinceJoined reports how long ago an account was created, for
// the "member since" line on profile pages.
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
