package cache

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Config configures PageCacheWithConfig.
type Config struct {
	Store Store
	TTL   time.Duration
	// KeyFunc derives the cache key. Defaults to the request URI.
	KeyFunc func(c echo.Context) string
}

// URIKey keys entries by path and query.
func URIKey(c echo.Context) string {
	return c.Request().URL.RequestURI()
}

// PageCacheWithConfig serves GET responses from config.Store. Only 200
// responses are stored. Nothing but the TTL or Clear evicts an entry.
func PageCacheWithConfig(config Config) echo.MiddlewareFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = URIKey
	}
	store, ttl := config.Store, config.TTL
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			ctx := req.Context()
			key := config.KeyFunc(c)

			entry, ok, err := store.Get(ctx, key)
			if err != nil {
				log.Printf("page cache: get %s: %v", key, err)
			}
			if ok {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(entry.Status, entry.ContentType, entry.Body)
			}

			res := c.Response()
			rec := &bodyRecorder{ResponseWriter: res.Writer, body: new(bytes.Buffer)}
			res.Writer = rec
			defer func() { res.Writer = rec.ResponseWriter }()

			if err := next(c); err != nil {
				return err
			}
			if res.Status != http.StatusOK {
				return nil
			}
			entry = Entry{
				Status:      res.Status,
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			}
			if err := store.Set(ctx, key, entry, ttl); err != nil {
				log.Printf("page cache: set %s: %v", key, err)
			}
			return nil
		}
	}
}

type bodyRecorder struct {
	http.ResponseWriter
	body *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
