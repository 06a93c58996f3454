// Package middleware traces inbound HTTP requests with a tracer client.
//
// The middleware wraps an http.Handler so that every request runs inside a
// trace scope: the propagated span context is read from the request headers
// and continued when present, a fresh trace is started otherwise, and the
// trace is finished exactly once when the handler returns - including when
// it panics, in which case the fault is recorded on the root span before
// the panic is re-raised for the server's own recovery. Header names and
// encodings are decided by the tracer's configured Adapter; this package
// only supplies the http.Header carrier shape.
//
// # Wiring
//
// Wrap a mux (or any handler) once, near the server setup:
//
//	client, err := tracer.NewClient("api", tracer.Config{
//		Service: "checkout-api",
//		Env:     "production",
//		Adapter: adapter,
//		Sender:  sender,
//	})
//	if err != nil {
//		log.Error("tracer setup failed", err, nil)
//	}
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/orders", handleOrders)
//
//	traced := middleware.Trace(middleware.Config{
//		Tracer:       client,
//		IgnoredPaths: []string{"/healthz", "/metrics"},
//	})(mux)
//
//	srv := &http.Server{Addr: ":8080", Handler: traced}
//
// Handlers receive the trace through the request context and can open child
// spans or attach tags with the usual client operations:
//
//	func handleOrders(w http.ResponseWriter, r *http.Request) {
//		ctx := r.Context()
//		_ = client.Span(ctx, "db.load_orders", func(ctx context.Context) error {
//			return loadOrders(ctx)
//		})
//	}
//
// # Request Spans
//
// The root span of each request trace is named by Config.OperationName and
// tagged with http.method, http.url, and http.status_code. Its resource
// defaults to "METHOD /path"; supply Config.ResourceFunc to collapse
// parameterized paths into route patterns and keep resource cardinality
// bounded. Responses with a 5xx status additionally mark the root span as
// errored so backends surface them without log diving.
//
// # Cross-Service Propagation
//
// An upstream service injects its context into the outbound request, and
// this middleware picks it up on arrival, so both sides land in one trace:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	client.InjectContext(ctx, tracer.HTTPHeadersCarrier(req.Header))
//	resp, err := httpClient.Do(req)
//
// When the tracer is nil, disabled, or cannot start a trace, the middleware
// degrades to a passthrough: requests are served exactly as without it.
package middleware
