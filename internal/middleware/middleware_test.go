package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-project/yatube/internal/models"
)

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func newServer(sessions *Sessions, users UserLookup) *echo.Echo {
	e := echo.New()
	e.Use(Identity(sessions, users))
	e.GET("/whoami/", func(c echo.Context) error {
		if u := CurrentUser(c); u != nil {
			return c.String(http.StatusOK, u.Username)
		}
		return c.String(http.StatusOK, "anonymous")
	})
	e.GET("/private/", func(c echo.Context) error {
		return c.String(http.StatusOK, "secret")
	}, LoginRequired("/auth/login/"))
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentity_ResolvesSessionCookie(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)
	leo := &models.User{ID: 7, Username: "leo"}
	e := newServer(sessions, fakeUsers{7: leo})

	token, err := sessions.Token(leo)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, "leo", serve(e, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami/", nil)
	assert.Equal(t, "anonymous", serve(e, req).Body.String())
}

func TestIdentity_RejectsBadTokens(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)
	leo := &models.User{ID: 7, Username: "leo"}
	e := newServer(sessions, fakeUsers{7: leo})

	forged, err := NewSessions("other-secret", time.Hour).Token(leo)
	require.NoError(t, err)
	expired, err := NewSessions("secret", -time.Minute).Token(leo)
	require.NoError(t, err)
	deleted, err := sessions.Token(&models.User{ID: 99, Username: "ghost"})
	require.NoError(t, err)

	for name, value := range map[string]string{
		"garbage": "not-a-jwt",
		"forged":  forged,
		"expired": expired,
		"deleted": deleted,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami/", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
			assert.Equal(t, "anonymous", serve(e, req).Body.String())
		})
	}
}

func TestLoginRequired_RedirectsWithNext(t *testing.T) {
	e := newServer(NewSessions("secret", time.Hour), fakeUsers{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/private/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=/private/", rec.Header().Get(echo.HeaderLocation))
}

func TestLoginURL_EscapesQuery(t *testing.T) {
	got := LoginURL("/auth/login/", "/follow/?page=2")
	assert.Equal(t, "/auth/login/?next=/follow/%3Fpage%3D2", got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/follow/?page=2", u.Query().Get("next"))
}

func TestSessions_IssueAndClear(t *testing.T) {
	sessions := NewSessions("secret", time.Hour)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, sessions.Issue(c, &models.User{ID: 1, Username: "leo"}))
	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	claims, err := sessions.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	sessions.Clear(c)
	cleared := rec.Result().Cookies()[0]
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}

func TestSafeNext(t *testing.T) {
	assert.True(t, SafeNext("/create/"))
	assert.True(t, SafeNext("/follow/?page=2"))
	assert.False(t, SafeNext(""))
	assert.False(t, SafeNext("https://evil.example/"))
	assert.False(t, SafeNext("//evil.example/"))
	assert.False(t, SafeNext(`/\evil.example`))
	assert.False(t, SafeNext("create/"))
}

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad token")
	}
	return &auth.Token{UID: "uid-1", Claims: map[string]interface{}{"email": "ann@example.com"}}, nil
}

func TestFirebaseToken(t *testing.T) {
	e := echo.New()
	e.POST("/auth/firebase/", func(c echo.Context) error {
		return c.String(http.StatusOK, FirebaseTokenFrom(c).UID)
	}, FirebaseToken(stubVerifier{}))

	form := url.Values{"id_token": {"good"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/firebase/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/auth/firebase/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/firebase/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/firebase/", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)
}
