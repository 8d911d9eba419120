package handlers

import (
	"errors"
	"net/http"
	"os"
	"truthhub/internal/services"
	"truthhub/internal/store"

	"github.com/gin-gonic/gin"
)

type AvatarHandler struct {
	users   *store.UserStore
	avatars *services.AvatarService
}

func NewAvatarHandler(users *store.UserStore, avatars *services.AvatarService) *AvatarHandler {
	return &AvatarHandler{users: users, avatars: avatars}
}

// Get serves a user's avatar image. The file lives at a fixed slot per
// username; if it has gone missing it is drawn again on the spot.
func (h *AvatarHandler) Get(c *gin.Context) {
	username := c.Param("username")

	if _, err := h.users.FindByUsername(username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	path := h.avatars.Path(username)
	if _, err := os.Stat(path); err != nil {
		if _, err := h.avatars.Generate(username); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.File(path)
}
