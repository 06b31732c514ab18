package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	blog *services.Blog
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(blog *services.Blog) *FollowHandler {
	return &FollowHandler{blog: blog}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, loginRequired echo.MiddlewareFunc) {
	g.POST("/profile/:username/follow/", WithIdentity(h.FollowUser), loginRequired)
	g.POST("/profile/:username/unfollow/", WithIdentity(h.UnfollowUser), loginRequired)
}

// FollowUser follows an author and renders their profile. Following
// yourself or someone you already follow changes nothing.
func (h *FollowHandler) FollowUser(c echo.Context, viewer *models.User) error {
	profile, err := h.blog.Follow(c.Request().Context(), viewer, c.Param("username"), pageParam(c))
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/profile.html", profileView(profile))
}

// UnfollowUser stops following an author and renders their profile.
func (h *FollowHandler) UnfollowUser(c echo.Context, viewer *models.User) error {
	profile, err := h.blog.Unfollow(c.Request().Context(), viewer, c.Param("username"), pageParam(c))
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/profile.html", profileView(profile))
}
