// Package port exposes the responder's HTTP surface: a single route serving
// a fixed greeting, plus request-scoped middleware.
package port

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fargate-labs/greeter/internal/domain"
	"github.com/fargate-labs/greeter/internal/errmap"
	"github.com/fargate-labs/greeter/internal/observability"
)

const scopeName = "greeter"

// Handler serves the responder's single route.
type Handler struct {
	message  string
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewHandler creates a Handler that serves message on GET /.
func NewHandler(message string) (*Handler, error) {
	meter := observability.Meter(scopeName)

	requests, err := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests handled"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	latency, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create latency histogram: %w", err)
	}

	return &Handler{message: message, requests: requests, latency: latency}, nil
}

// Routes returns the fully wired HTTP handler, middleware included.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.root)
	return WithRequestID(WithAccessLog(mux))
}

// root answers GET / with the greeting. Everything else is an error:
// unknown paths 404, non-GET methods on / 405.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	ctx, span := observability.Tracer(scopeName).Start(r.Context(), "greeter.root")
	defer span.End()

	start := time.Now()
	var status int

	switch {
	case r.URL.Path != "/":
		status = http.StatusNotFound
		errmap.WriteHTTPError(w, fmt.Errorf("%s %s: %w", r.Method, r.URL.Path, domain.ErrNotFound))
	case r.Method != http.MethodGet:
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", http.MethodGet)
		errmap.WriteHTTPError(w, domain.ErrMethodNotAllowed)
	default:
		status = http.StatusOK
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, h.message)
	}

	attrs := metric.WithAttributes(
		attribute.String("method", r.Method),
		attribute.Int("status", status),
	)
	h.requests.Add(ctx, 1, attrs)
	h.latency.Record(ctx, time.Since(start).Seconds(), attrs)
}
