package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// UserHandler serves author profiles.
type UserHandler struct {
	blog *services.Blog
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(blog *services.Blog) *UserHandler {
	return &UserHandler{blog: blog}
}

// RegisterProfileRoutes registers the profile page.
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile/:username/", WithIdentity(h.Profile))
}

// Profile lists an author's posts and whether the viewer follows them.
func (h *UserHandler) Profile(c echo.Context, viewer *models.User) error {
	profile, err := h.blog.ProfileFeed(c.Request().Context(), viewer, c.Param("username"), pageParam(c))
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/profile.html", profileView(profile))
}
