package cache

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "/", Entry{Status: 200, Body: []byte("a")}, 20*time.Second))

	now = now.Add(19 * time.Second)
	entry, ok, err := s.Get(ctx, "/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", string(entry.Body))

	now = now.Add(time.Second)
	_, ok, err = s.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "/", Entry{Status: 200}, time.Minute))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newCachedServer(store Store, counter *int) *echo.Echo {
	e := echo.New()
	h := func(c echo.Context) error {
		*counter++
		return c.HTML(http.StatusOK, fmt.Sprintf("render %d", *counter))
	}
	e.GET("/", h, PageCacheWithConfig(Config{Store: store, TTL: time.Minute}))
	e.POST("/", h, PageCacheWithConfig(Config{Store: store, TTL: time.Minute}))
	e.GET("/missing", func(c echo.Context) error {
		*counter++
		return c.String(http.StatusNotFound, "nope")
	}, PageCacheWithConfig(Config{Store: store, TTL: time.Minute}))
	return e
}

func get(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestPageCache_ServesStoredBodyUntilCleared(t *testing.T) {
	store := NewMemoryStore()
	calls := 0
	e := newCachedServer(store, &calls)

	first := get(e, http.MethodGet, "/")
	assert.Equal(t, "render 1", first.Body.String())

	second := get(e, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "render 1", second.Body.String())
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, second.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	require.NoError(t, store.Clear(context.Background()))
	third := get(e, http.MethodGet, "/")
	assert.Equal(t, "render 2", third.Body.String())
}

func TestPageCache_KeyIncludesQuery(t *testing.T) {
	calls := 0
	e := newCachedServer(NewMemoryStore(), &calls)

	assert.Equal(t, "render 1", get(e, http.MethodGet, "/?page=1").Body.String())
	assert.Equal(t, "render 2", get(e, http.MethodGet, "/?page=2").Body.String())
	assert.Equal(t, "render 1", get(e, http.MethodGet, "/?page=1").Body.String())
}

func TestPageCache_SkipsNonGETAndErrors(t *testing.T) {
	calls := 0
	e := newCachedServer(NewMemoryStore(), &calls)

	get(e, http.MethodPost, "/")
	get(e, http.MethodPost, "/")
	assert.Equal(t, 2, calls)

	get(e, http.MethodGet, "/missing")
	rec := get(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 4, calls)
}

func TestPageCacheWithConfig_KeyFunc(t *testing.T) {
	calls := 0
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, fmt.Sprintf("%s %d", c.Request().Header.Get("X-User"), calls))
	}, PageCacheWithConfig(Config{
		Store: NewMemoryStore(),
		TTL:   time.Minute,
		KeyFunc: func(c echo.Context) string {
			return URIKey(c) + "|" + c.Request().Header.Get("X-User")
		},
	}))

	as := func(user string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Body.String()
	}
	assert.Equal(t, "a 1", as("a"))
	assert.Equal(t, "b 2", as("b"))
	assert.Equal(t, "a 1", as("a"))
}
