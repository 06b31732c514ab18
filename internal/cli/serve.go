package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/yatube-project/yatube/internal/cache"
	"github.com/yatube-project/yatube/internal/router"
	"github.com/yatube-project/yatube/pkg/config"
	"github.com/yatube-project/yatube/pkg/firebase"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, port string) error {
	cfg, db, err := openDB(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when serve exits
	if port != "" {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := newServer(ctx, cfg, db)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer wires the echo instance for cfg.
func newServer(ctx context.Context, cfg *config.Config, db *config.DB) (*echo.Echo, error) {
	opts := router.Options{DB: db.SQL, Config: cfg}

	if cfg.FirebaseCredentialsPath != "" {
		authClient, err := firebase.InitAuth(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		opts.FirebaseAuth = authClient
	}

	store, err := cacheStore(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	opts.CacheStore = store

	e := echo.New()
	e.HideBanner = true
	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, opts); err != nil {
		return nil, err
	}
	return e, nil
}

// cacheStore returns the page cache store selected by CACHE_BACKEND.
func cacheStore(ctx context.Context, cfg *config.Config, db *config.DB) (cache.Store, error) {
	if cfg.CacheBackend != "mongo" {
		return cache.NewMemoryStore(), nil
	}
	if db.Mongo == nil {
		return nil, errors.New("mongo cache backend selected but MongoDB is not connected")
	}
	store, err := cache.NewMongoStore(ctx, db.Mongo.Database(cfg.MongoDatabase))
	if err != nil {
		return nil, err
	}
	return store, nil
}
