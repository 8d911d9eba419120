package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"truthhub/internal/middleware"
	"truthhub/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// The username becomes a URL segment and an avatar file slot, so the
// charset is locked down before either ever sees it.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

type AuthHandler struct {
	users *store.UserStore
}

func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// ShowLogin renders the combined login/register view. The error query
// param carries messages from failed attempts.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login_register.html", gin.H{
		"LoginError": c.Query("error"),
	})
}

// ShowRegister renders the same view in registration mode. Reached
// after Google sign-in resolved an identity with no local account.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	session := sessions.Default(c)
	Render(c, http.StatusOK, "auth/login_register.html", gin.H{
		"RegError":    c.Query("error"),
		"Registering": session.Get(middleware.SessionPendingHashKey) != nil,
	})
}

// Register finishes sign-up for a pending external identity: the user
// picks a username and the stashed hash becomes their account key.
func (h *AuthHandler) Register(c *gin.Context) {
	session := sessions.Default(c)
	pending := session.Get(middleware.SessionPendingHashKey)
	if pending == nil {
		RedirectWithError(c, "/login", "Please sign in with Google first")
		return
	}
	hash, ok := pending.(string)
	if !ok || hash == "" {
		RedirectWithError(c, "/login", "Please sign in with Google first")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		RedirectWithError(c, "/register", "Username is required")
		return
	}
	if !usernamePattern.MatchString(username) {
		RedirectWithError(c, "/register", "Username may only contain letters, digits, - and _")
		return
	}

	user, err := h.users.Create(username, hash)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Stay pending so the caller can try another name.
			RedirectWithError(c, "/register", "Username already exists")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Registration failed, please try again")
		return
	}

	session.Delete(middleware.SessionPendingHashKey)
	session.Set(middleware.SessionUserIDKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
