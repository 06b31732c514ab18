package router

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/yatube-project/yatube/internal/cache"
	"github.com/yatube-project/yatube/internal/handlers"
	"github.com/yatube-project/yatube/internal/middleware"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/render"
	"github.com/yatube-project/yatube/internal/repositories"
	"github.com/yatube-project/yatube/internal/services"
	"github.com/yatube-project/yatube/internal/uploads"
	"github.com/yatube-project/yatube/internal/validators"
	"github.com/yatube-project/yatube/pkg/config"
	"gorm.io/gorm"
)

// MediaURL is the URL prefix uploaded files are served under.
const MediaURL = "/media/"

// Options carries the dependencies of SetupRoutes.
type Options struct {
	DB     *gorm.DB
	Config *config.Config
	// CacheStore holds the cached index page. Defaults to a MemoryStore.
	CacheStore cache.Store
	// FirebaseAuth enables /auth/firebase/ when set.
	FirebaseAuth middleware.TokenVerifier
	// Renderer overrides the template renderer.
	Renderer echo.Renderer
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Pre(eMiddleware.AddTrailingSlashWithConfig(eMiddleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, MediaURL) || path == "/healthz"
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s %d %s error=%v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, opts Options) error {
	cfg := opts.Config
	if err := models.AutoMigrate(opts.DB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("Auto-migrations completed for all models.")

	if opts.Renderer == nil {
		renderer, err := render.New(MediaURL)
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		opts.Renderer = renderer
	}
	e.Renderer = opts.Renderer
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(e)

	// --- Services ---
	userRepo := repositories.NewPostgresUserRepository(opts.DB)
	blog := services.NewBlog(opts.DB, cfg.PostsPerPage)
	accounts := services.NewAccounts(opts.DB)
	storage := uploads.NewStorage(cfg.MediaRoot)

	sessions := middleware.NewSessions(cfg.JWTSecret, cfg.SessionTTL)
	sessions.Secure = cfg.Env == "production"
	e.Use(middleware.Identity(sessions, userRepo))
	loginRequired := middleware.LoginRequired(handlers.LoginPath)

	store := opts.CacheStore
	if store == nil {
		store = cache.NewMemoryStore()
	}
	indexCache := cache.PageCacheWithConfig(cache.Config{
		Store:   store,
		TTL:     cfg.IndexCacheTTL,
		KeyFunc: indexCacheKey,
	})

	e.GET("/healthz", handlers.NewHealthHandler(opts.DB).HealthCheck)
	e.Static(strings.TrimSuffix(MediaURL, "/"), cfg.MediaRoot)

	root := e.Group("")
	handlers.NewFeedHandler(blog).RegisterFeedRoutes(root, loginRequired, indexCache)
	handlers.NewUserHandler(blog).RegisterProfileRoutes(root)
	handlers.NewPostHandler(blog, storage).RegisterPostRoutes(root, loginRequired)
	handlers.NewCommentHandler(blog).RegisterCommentRoutes(root, loginRequired)
	handlers.NewFollowHandler(blog).RegisterFollowRoutes(root, loginRequired)
	handlers.RegisterAboutRoutes(root)
	log.Println("Post routes configured.")

	handlers.NewAuthHandler(accounts, sessions, opts.FirebaseAuth).RegisterAuthRoutes(e.Group("/auth"))
	log.Println("Auth routes configured.")

	return nil
}

// indexCacheKey keys the index by URI and, for logged in users, by user so
// the navigation of one user is never served to another.
func indexCacheKey(c echo.Context) string {
	key := cache.URIKey(c)
	if user := middleware.CurrentUser(c); user != nil {
		return fmt.Sprintf("%s#user=%d", key, user.ID)
	}
	return key
}
