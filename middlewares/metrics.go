package middlewares

import (
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/problem"
)

// Metrics returns middleware recording request count and latency on the
// global OpenTelemetry meter provider.
// Routes are labelled by their chi pattern, never the raw path, to keep
// cardinality bounded.
func Metrics() internal.Middleware {
	meter := otel.Meter("github.com/rigma/metadata/middlewares")

	// Instrument creation only fails on invalid names.
	requests, err := meter.Int64Counter("metadata_http_requests_total",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		panic(err)
	}
	duration, err := meter.Float64Histogram("metadata_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(err)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil && !c.ResponseWriter().Written() {
				status = statusOf(err)
			}

			attrs := metric.WithAttributes(
				attribute.String("method", c.Request().Method),
				attribute.String("route", routePattern(c)),
				attribute.String("status", strconv.Itoa(status)),
			)
			requests.Add(c.Context(), 1, attrs)
			duration.Record(c.Context(), time.Since(start).Seconds(), attrs)
			return err
		}
	}
}

func routePattern(c internal.Context) string {
	if rctx := chi.RouteContext(c.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// statusOf predicts the status the App error handler will render for err.
func statusOf(err error) int {
	return problem.From(err).StatusCode()
}
