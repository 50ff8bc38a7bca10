package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/brandi/internal/cache"
	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/util/compression"
)

// requestID tags the request with an id, reusing a well-formed incoming one,
// and puts a logger carrying it into the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(config.HRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(config.HRequestID, id)

		l := serverLogger.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.RobotsPath {
			w.Header().Set("X-Frame-Options", "deny")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "same-origin")
		}
		next.ServeHTTP(w, r)
	})
}

// cacheHeaders marks dynamic responses as revalidate-always and lets
// hashed static files be cached for an hour.
func cacheHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Add(config.HVary, "Cookie")

		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		next.ServeHTTP(w, r)
	})
}

// compressibleTypes are the response types worth encoding. Static images
// and fonts are already compressed.
var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/plain",
	"text/javascript",
	"application/javascript",
	"application/json",
	"image/svg+xml",
}

// compress negotiates the response encoding through chi, with the
// klauspost encoders replacing the standard library ones.
func compress(level int) func(http.Handler) http.Handler {
	c := middleware.NewCompressor(level, compressibleTypes...)
	for _, e := range compression.Supported {
		c.SetEncoder(e.Encoding, e.New)
	}
	return c.Handler
}
