// Package server serves the storefront and admin views over HTTP, resolving
// request paths against the route table.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/debemdeboas/brandi/internal/assets"
	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/metrics"
	"github.com/debemdeboas/brandi/internal/routes"
	"github.com/debemdeboas/brandi/internal/util/compression"
	"github.com/debemdeboas/brandi/internal/view"
)

const tracerName = "github.com/debemdeboas/brandi/internal/server"

var serverLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	serverLogger = l
}

// Resolver turns a request path into the chain of records to mount.
type Resolver interface {
	Resolve(path string) (routes.Resolution, error)
}

// Catalog lists the declared routes for navigation and introspection, and
// turns route names back into paths.
type Catalog interface {
	Routes() []routes.Entry
	Roots() []*routes.Record
	URL(name string) (string, bool)
}

type Server struct {
	cfg      *config.Config
	resolver Resolver
	catalog  Catalog
	renderer *view.Renderer
	assets   assets.Source
	metrics  *metrics.Recorder
	tracer   trace.Tracer

	nav    []navItem
	router chi.Router
}

type Option func(*Server)

// WithMetrics records resolutions and render timings and serves them at
// the configured metrics path.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

func New(cfg *config.Config, resolver Resolver, catalog Catalog, renderer *view.Renderer, src assets.Source, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		catalog:  catalog,
		renderer: renderer,
		assets:   src,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.nav = s.buildNav()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(secureHeaders)
	r.Use(cacheHeaders)
	if s.cfg.Server.Compression {
		r.Use(compress(compression.DefaultLevel))
	}

	r.Get(routes.RobotsPath, serveRobots)
	r.Get(routes.HealthPath, serveHealth)
	r.Get(routes.RoutesPath, s.serveRoutes)
	r.Post(routes.ThemeToggle, s.serveThemeToggle)
	r.Get(routes.PartialsView, s.servePartial)
	r.Handle(routes.StaticPath+"*", http.StripPrefix(routes.StaticPath, assets.Handler(s.assets)))
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}

	r.Get("/", s.servePage)
	r.Get("/*", s.servePage)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info().
			Str("addr", srv.Addr).
			Str("mode", s.cfg.Router.Mode).
			Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	serverLogger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
