package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// CommentHandler handles comment submissions.
type CommentHandler struct {
	blog *services.Blog
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(blog *services.Blog) *CommentHandler {
	return &CommentHandler{blog: blog}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, loginRequired echo.MiddlewareFunc) {
	g.POST("/posts/:id/comment/", WithIdentity(h.AddComment), loginRequired)
}

// AddComment stores a comment and redirects to the post. Invalid input is
// dropped without feedback.
func (h *CommentHandler) AddComment(c echo.Context, viewer *models.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusFound, postURL(id))
	}
	form.Text = strings.TrimSpace(form.Text)
	if err := c.Validate(&form); err != nil {
		return c.Redirect(http.StatusFound, postURL(id))
	}
	if _, err := h.blog.AddComment(c.Request().Context(), viewer, id, form.Text); err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, postURL(id))
}
