package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"truthhub/internal/config"
	"truthhub/internal/middleware"
	"truthhub/internal/store"
	"truthhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleOauthConfig *oauth2.Config

// InitGoogleOAuth sets up the Google OAuth client from config.
func InitGoogleOAuth(cfg *config.Config) {
	googleOauthConfig = &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.SiteURL + "/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleUserInfo is the userinfo payload. Only ID is consumed here; it
// is hashed immediately and never stored raw.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GoogleLogin starts the OAuth handshake.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not start sign-in")
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	url := googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback resolves the returned identity to a local account, or
// parks the identity hash in the session and sends the caller to pick a
// username.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		RedirectWithError(c, "/login", "Invalid sign-in state, please try again")
		return
	}
	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		RedirectWithError(c, "/login", "Google sign-in was cancelled")
		return
	}

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		RedirectWithError(c, "/login", "Could not complete Google sign-in")
		return
	}

	userInfo, err := getGoogleUserInfo(token.AccessToken)
	if err != nil {
		RedirectWithError(c, "/login", "Could not fetch your Google profile")
		return
	}

	hash := utils.HashExternalID(userInfo.ID)

	user, err := h.users.FindByExternalID(hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Known to Google, unknown to us: stash the hash and let the
			// caller choose a username.
			session.Set(middleware.SessionPendingHashKey, hash)
			session.Save()
			c.Redirect(http.StatusFound, "/register")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Sign-in failed, please try again")
		return
	}

	session.Set(middleware.SessionUserIDKey, user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func getGoogleUserInfo(accessToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}
