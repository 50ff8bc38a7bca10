// Package metrics exposes Prometheus counters for route resolution and a
// histogram for view rendering.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRedirect = "redirect"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// RouteUnmatched labels resolutions that did not land on a route.
const RouteUnmatched = "unmatched"

type Config struct {
	// Namespace prefixes every metric name (default: "brandi").
	Namespace string

	// Buckets are the render duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors and backs the scrape handler.
	// Default: a fresh registry with the Go and process collectors.
	Registry *prometheus.Registry
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Recorder holds the collectors. A nil *Recorder records nothing, so
// callers need not check whether metrics are enabled.
type Recorder struct {
	registry       *prometheus.Registry
	resolutions    *prometheus.CounterVec
	redirects      *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

func New(opts ...Option) *Recorder {
	cfg := Config{
		Namespace: "brandi",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(cfg.Registry)

	return &Recorder{
		registry: cfg.Registry,

		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "route_resolutions_total",
			Help:      "Route resolutions by landed route and outcome",
		}, []string{"route", "outcome"}),

		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "route_redirects_total",
			Help:      "Redirect hops followed while resolving routes",
		}, []string{"from", "to"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering view chains",
			Buckets:   cfg.Buckets,
		}, []string{"mode"}),
	}
}

func (m *Recorder) ObserveResolution(route, outcome string) {
	if m == nil {
		return
	}
	if route == "" {
		route = RouteUnmatched
	}
	m.resolutions.WithLabelValues(route, outcome).Inc()
}

func (m *Recorder) ObserveRedirect(from, to string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(from, to).Inc()
}

func (m *Recorder) ObserveRender(mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
// Compression is left to the server middleware.
func (m *Recorder) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		DisableCompression: true,
	})
}
