package handlers

import (
	"errors"
	"net/http"
	"truthhub/internal/middleware"
	"truthhub/internal/models"
	"truthhub/internal/store"
	"truthhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	ledger *store.LikeLedger
}

func NewLikeHandler(ledger *store.LikeLedger) *LikeHandler {
	return &LikeHandler{ledger: ledger}
}

// Toggle flips the current user's like on a post and returns the new
// state. Anonymous callers never get here; the auth gate redirects them.
func (h *LikeHandler) Toggle(c *gin.Context) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	currentUser := user.(*models.User)

	postID := uint(utils.StringToInt(c.Param("id")))

	liked, likes, err := h.ledger.Toggle(currentUser.ID, postID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update like"})
		return
	}

	utils.GetCache().Purge()
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}
