package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
)

const viewerKey = "viewer"

// UserLookup loads the user a session points at.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Identity resolves the session cookie into a user and stores it in the
// echo context. Requests without a valid session stay anonymous.
func Identity(sessions *Sessions, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			claims, err := sessions.Parse(cookie.Value)
			if err != nil {
				return next(c)
			}
			user, err := users.GetUserByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return next(c)
			}
			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// CurrentUser returns the logged in user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(viewerKey).(*models.User)
	return user
}

// SetCurrentUser replaces the user for the rest of the request.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(viewerKey, user)
}

// LoginRequired redirects anonymous requests to loginPath, passing the
// requested URI in the next parameter.
func LoginRequired(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}
			return c.Redirect(http.StatusFound, LoginURL(loginPath, c.Request().URL.RequestURI()))
		}
	}
}

// LoginURL builds loginPath?next=<target> leaving slashes unescaped.
func LoginURL(loginPath, target string) string {
	return loginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(target), "%2F", "/")
}

// SafeNext reports whether next is a local path that is safe to redirect to
// after login.
func SafeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}
