package handlers

import (
	"errors"
	"net/http"
	"truthhub/internal/middleware"
	"truthhub/internal/models"
	"truthhub/internal/store"
	"truthhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *store.UserStore
	posts *store.PostStore
}

func NewUserHandler(users *store.UserStore, posts *store.PostStore) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// Profile shows the current user's own page with their posts.
func (h *UserHandler) Profile(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	h.renderProfile(c, user, true)
}

// PublicProfile shows any user's page by username.
func (h *UserHandler) PublicProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load profile")
		return
	}

	own := false
	if current, exists := c.Get(middleware.CheckUserKey); exists {
		own = current.(*models.User).ID == user.ID
	}
	h.renderProfile(c, user, own)
}

func (h *UserHandler) renderProfile(c *gin.Context, user *models.User, own bool) {
	sort := resolveSort(c)

	posts, err := h.posts.ListByUser(user.ID, sort)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load profile")
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"ProfileUser": user,
		"Posts":       renderPosts(posts),
		"PostCount":   len(posts),
		"DaysSince":   utils.GetDaysSinceJoined(user.CreatedAt),
		"Sort":        string(sort),
		"OwnProfile":  own,
	})
}

// DeleteAccount removes the current user and everything they authored,
// then drops the session back to anonymous.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if err := h.users.Remove(user.ID); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete your account")
		return
	}

	utils.GetCache().Purge()

	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
