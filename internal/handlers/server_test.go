package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/yatube-project/yatube/internal/cache"
	"github.com/yatube-project/yatube/internal/middleware"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/render"
	"github.com/yatube-project/yatube/internal/router"
	"github.com/yatube-project/yatube/internal/testutil"
	"github.com/yatube-project/yatube/pkg/config"
	"gorm.io/gorm"
)

type testServer struct {
	t        *testing.T
	e        *echo.Echo
	db       *gorm.DB
	cfg      *config.Config
	renderer *testutil.RecordingRenderer
	store    *cache.MemoryStore
}

func newServer(t *testing.T, opts ...func(*router.Options)) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := config.Default()
	cfg.DBDriver = "sqlite"
	cfg.MediaRoot = t.TempDir()

	r, err := render.New(router.MediaURL)
	require.NoError(t, err)
	renderer := testutil.NewRecordingRenderer(r)
	store := cache.NewMemoryStore()

	options := router.Options{DB: db, Config: cfg, CacheStore: store, Renderer: renderer}
	for _, opt := range opts {
		opt(&options)
	}

	e := echo.New()
	router.SetupMiddleware(e)
	require.NoError(t, router.SetupRoutes(e, options))
	return &testServer{t: t, e: e, db: db, cfg: cfg, renderer: renderer, store: store}
}

func (s *testServer) serve(req *http.Request, user *models.User) *httptest.ResponseRecorder {
	s.t.Helper()
	if user != nil {
		token, err := middleware.NewSessions(s.cfg.JWTSecret, time.Hour).Token(user)
		require.NoError(s.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	s.renderer.Reset()
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(target string, user *models.User) *httptest.ResponseRecorder {
	return s.serve(httptest.NewRequest(http.MethodGet, target, nil), user)
}

func (s *testServer) postForm(target string, user *models.User, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.serve(req, user)
}

func (s *testServer) postMultipart(target string, user *models.User, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(s.t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "small.gif")
		require.NoError(s.t, err)
		_, err = part.Write(image)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return s.serve(req, user)
}

func (s *testServer) reloadPost(id uint) models.Post {
	s.t.Helper()
	var post models.Post
	require.NoError(s.t, s.db.First(&post, id).Error)
	return post
}

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}
