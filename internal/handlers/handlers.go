// Package handlers implements the HTML pages of the site on top of the
// services package.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/middleware"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// LoginPath is where LoginRequired sends anonymous users.
const LoginPath = "/auth/login/"

// IdentityHandlerFunc is a handler that receives the current user, or nil
// for anonymous requests, as an explicit argument.
type IdentityHandlerFunc func(c echo.Context, viewer *models.User) error

// WithIdentity adapts an IdentityHandlerFunc to echo.
func WithIdentity(h IdentityHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h(c, middleware.CurrentUser(c))
	}
}

// httpError maps service errors to HTTP errors. Anything unknown is
// returned as is and ends up as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.ErrNotFound
	case errors.Is(err, services.ErrUnauthenticated):
		return echo.ErrUnauthorized
	}
	return err
}

func postID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return uint(id), nil
}

func pageParam(c echo.Context) string {
	return c.QueryParam("page")
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// NewHTTPErrorHandler renders core/404.html for not found errors and defers
// to echo's default handler for everything else.
func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusNotFound && !c.Response().Committed {
			rerr := c.Render(http.StatusNotFound, "core/404.html", NotFoundView{Path: c.Request().URL.Path})
			if rerr == nil {
				return
			}
			log.Printf("render 404 page: %v", rerr)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
