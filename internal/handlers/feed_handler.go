package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// FeedHandler serves the paginated post listings.
type FeedHandler struct {
	blog *services.Blog
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(blog *services.Blog) *FeedHandler {
	return &FeedHandler{blog: blog}
}

// RegisterFeedRoutes registers the index, group and follow feeds. The index
// is wrapped in indexCache.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, loginRequired, indexCache echo.MiddlewareFunc) {
	g.GET("/", WithIdentity(h.Index), indexCache)
	g.GET("/group/:slug/", WithIdentity(h.GroupPosts))
	g.GET("/follow/", WithIdentity(h.FollowIndex), loginRequired)
}

// Index lists every post, newest first.
func (h *FeedHandler) Index(c echo.Context, _ *models.User) error {
	page, err := h.blog.IndexFeed(c.Request().Context(), pageParam(c))
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/index.html", IndexView{Page: page})
}

// GroupPosts lists the posts of one group.
func (h *FeedHandler) GroupPosts(c echo.Context, _ *models.User) error {
	group, page, err := h.blog.GroupFeed(c.Request().Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/group_list.html", GroupView{Group: group, Page: page})
}

// FollowIndex lists posts by the authors the viewer follows.
func (h *FeedHandler) FollowIndex(c echo.Context, viewer *models.User) error {
	ctx := c.Request().Context()
	page, err := h.blog.FollowFeed(ctx, viewer, pageParam(c))
	if err != nil {
		return httpError(err)
	}
	authors, err := h.blog.Following(ctx, viewer)
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/follow.html", FollowView{Page: page, Authors: authors})
}
