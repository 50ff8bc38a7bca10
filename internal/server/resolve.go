package server

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/debemdeboas/brandi/internal/metrics"
	"github.com/debemdeboas/brandi/internal/routes"
)

// resolve wraps the resolver with a span and the resolution counters.
func (s *Server) resolve(ctx context.Context, path string) (routes.Resolution, error) {
	_, span := s.tracer.Start(ctx, "routes.Resolve",
		trace.WithAttributes(attribute.String("route.requested", path)),
	)
	defer span.End()

	res, err := s.resolver.Resolve(path)
	if err != nil {
		outcome := outcomeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.metrics.ObserveResolution("", outcome)
		return res, err
	}

	for _, hop := range res.Hops {
		s.metrics.ObserveRedirect(hop.From, hop.To)
	}

	outcome := metrics.OutcomeOK
	if res.Redirected() {
		outcome = metrics.OutcomeRedirect
	}
	route := res.Name()
	if route == "" {
		route = res.Path
	}

	span.SetAttributes(
		attribute.String("route.path", res.Path),
		attribute.String("route.name", res.Name()),
		attribute.Int("route.redirects", len(res.Redirects)),
		attribute.Int("route.depth", len(res.Records)),
	)
	s.metrics.ObserveResolution(route, outcome)
	return res, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, routes.ErrInvalidPath):
		return metrics.OutcomeInvalid
	case errors.Is(err, routes.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
