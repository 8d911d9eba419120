package middleware

import (
	"net/http"
	"truthhub/internal/db"
	"truthhub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Gin context key for the resolved user.
const CheckUserKey = "user"

// Session keys. A session is Anonymous with neither key set, pending
// registration with only the hash set, and authenticated with a user id.
const (
	SessionUserIDKey      = "user_id"
	SessionPendingHashKey = "pending_id_hash"
)

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserIDKey)
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session to a user record and sets it on the
// context. A stale id (account deleted elsewhere) drops the session back
// to anonymous rather than erroring.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserIDKey)

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			} else {
				session.Delete(SessionUserIDKey)
				session.Save()
			}
		}
		c.Next()
	}
}
