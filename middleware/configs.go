package middleware

import (
	"net/http"

	"github.com/aalemi-dev/tracelab/tracer"
)

// DefaultOperationName is the span name used for inbound requests when the
// configuration does not override it.
const DefaultOperationName = "http.request"

// Config carries the settings for the HTTP tracing middleware.
type Config struct {
	// Tracer is the client used to start, continue, annotate, and finish
	// the per-request trace. A nil Tracer turns the middleware into a
	// passthrough so handlers keep serving when tracing is not wired up.
	//
	// Example:
	//
	//	client, _ := tracer.NewClient("api", tracer.Config{Service: "api"})
	//	mw := middleware.Trace(middleware.Config{Tracer: client})
	Tracer tracer.Tracer

	// OperationName names the root span of every request trace. Empty
	// means DefaultOperationName.
	//
	// Example:
	//
	//	OperationName: "gateway.request"
	OperationName string

	// IgnoredPaths lists URL paths served without tracing. Matching is
	// exact, which fits health and readiness probes that would otherwise
	// flood the backend with identical traces.
	//
	// Example:
	//
	//	IgnoredPaths: []string{"/healthz", "/readyz", "/metrics"}
	IgnoredPaths []string

	// ResourceFunc derives the resource recorded on the root span. The
	// default is "METHOD /path", e.g. "GET /orders". Override it to
	// collapse high-cardinality paths into route patterns.
	//
	// Example:
	//
	//	ResourceFunc: func(r *http.Request) string {
	//		return r.Method + " " + routePattern(r)
	//	}
	ResourceFunc func(r *http.Request) string
}
