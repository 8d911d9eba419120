package handlers

import (
	"errors"
	"net/http"
	"strings"
	"truthhub/internal/middleware"
	"truthhub/internal/models"
	"truthhub/internal/store"
	"truthhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	posts *store.PostStore
}

func NewCommentHandler(posts *store.PostStore) *CommentHandler {
	return &CommentHandler{posts: posts}
}

// List returns a post's comments as JSON, newest first. A missing post
// gets an empty list with a 404 rather than an error dump.
func (h *CommentHandler) List(c *gin.Context) {
	postID := uint(utils.StringToInt(c.Param("postId")))

	comments, err := h.posts.ListComments(postID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"comments": []models.Comment{}})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"comments": []models.Comment{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create adds a comment by the current user and sends them back home.
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := uint(utils.StringToInt(c.Param("postId")))

	body := strings.TrimSpace(c.PostForm("comment"))
	if body == "" {
		RedirectWithError(c, "/", "Comment cannot be empty")
		return
	}

	if _, err := h.posts.AddComment(postID, user, body); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RedirectWithError(c, "/", "Post not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not add your comment")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
