package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"
	"truthhub/internal/middleware"
	"truthhub/internal/models"
	"truthhub/internal/store"
	"truthhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const postsPerPage = 30

type PostHandler struct {
	posts *store.PostStore
}

func NewPostHandler(posts *store.PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

// renderedPost carries a post plus its markdown rendered for the view.
type renderedPost struct {
	models.Post
	ContentHTML template.HTML
}

func renderPosts(posts []models.Post) []renderedPost {
	out := make([]renderedPost, len(posts))
	for i, p := range posts {
		out[i] = renderedPost{Post: p, ContentHTML: utils.RenderMarkdown(p.Content)}
	}
	return out
}

// feedPage is the cacheable part of a feed response. Cached pages are
// shared between concurrent requests and must never be written to;
// per-request fields go into a fresh map at render time.
type feedPage struct {
	Posts      []renderedPost
	TotalPages int
}

// resolveSort picks the listing order for a request: explicit query
// param first, then the session preference, then newest. The preference
// is per-session on purpose; one viewer's choice never leaks to another.
func resolveSort(c *gin.Context) store.SortOrder {
	if q := c.Query("sort"); q != "" {
		return store.ParseSortOrder(q)
	}
	session := sessions.Default(c)
	if pref, ok := session.Get("sort_order").(string); ok {
		return store.ParseSortOrder(pref)
	}
	return store.SortNewest
}

// Home renders the global feed.
func (h *PostHandler) Home(c *gin.Context) {
	sort := resolveSort(c)

	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}

	cacheKey := fmt.Sprintf("home:%s:page:%d", sort, page)
	feed, _ := utils.GetCache().Get(cacheKey).(*feedPage)
	if feed == nil {
		posts, totalPages, err := h.posts.ListPage(sort, page, postsPerPage)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not load the feed")
			return
		}
		feed = &feedPage{Posts: renderPosts(posts), TotalPages: totalPages}
		utils.GetCache().Set(cacheKey, feed, 30*time.Second)
	}

	Render(c, http.StatusOK, "home.html", gin.H{
		"Posts":       feed.Posts,
		"Sort":        string(sort),
		"CurrentPage": page,
		"TotalPages":  feed.TotalPages,
		"Error":       c.Query("error"),
	})
}

// Create adds a post for the current user and redirects home.
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if title == "" || content == "" {
		RedirectWithError(c, "/", "Title and content are required")
		return
	}

	if _, err := h.posts.Create(title, content, user); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not publish your post")
		return
	}

	utils.GetCache().Purge()
	c.Redirect(http.StatusFound, "/")
}

// Delete removes a post. Only the recorded author may do this; the
// ownership check is keyed by user id inside the store.
func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := uint(utils.StringToInt(c.Param("id")))

	err := h.posts.RemoveAs(postID, user.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		RedirectWithError(c, "/", "Post not found")
		return
	case errors.Is(err, store.ErrUnauthorized):
		RedirectWithError(c, "/", "You can only delete your own posts")
		return
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Could not delete the post")
		return
	}

	utils.GetCache().Purge()
	c.Redirect(http.StatusFound, "/")
}

// SetSort stores the caller's preferred feed order in their session.
func (h *PostHandler) SetSort(c *gin.Context) {
	order := store.ParseSortOrder(c.PostForm("order"))

	session := sessions.Default(c)
	session.Set("sort_order", string(order))
	session.Save()

	c.Redirect(http.StatusFound, "/")
}
