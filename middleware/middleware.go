package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aalemi-dev/tracelab/tracer"
)

// spanTypeWeb marks request spans so backends group them with the other HTTP
// entry points of a service.
const spanTypeWeb = "web"

// Trace returns middleware that wraps every request in a trace scope.
//
// For each request the middleware extracts the propagated span context from
// the inbound headers and continues that trace, or starts a fresh one when
// the headers carry none. The root span is tagged with the HTTP method, the
// path, and the response status code. The guarantees mirror the client's
// scope helpers:
//
//   - The trace is finished exactly once on every exit path - normal
//     responses, error statuses, and handler panics.
//   - A panic is annotated on the root span, with its stack, before the
//     trace finishes, and then re-raised unchanged for the server's own
//     recovery to observe.
//   - Tracing failures never fail the request: when no trace can be
//     started the handler serves with its original context.
func Trace(cfg Config) func(http.Handler) http.Handler {
	name := cfg.OperationName
	if name == "" {
		name = DefaultOperationName
	}
	resource := cfg.ResourceFunc
	if resource == nil {
		resource = func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}
	}
	ignored := make(map[string]struct{}, len(cfg.IgnoredPaths))
	for _, p := range cfg.IgnoredPaths {
		ignored[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Tracer == nil {
				next.ServeHTTP(w, r)
				return
			}
			if _, skip := ignored[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			ctx, ok := continueOrStart(cfg.Tracer, r, name)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			_, _ = cfg.Tracer.UpdateTopSpan(ctx,
				tracer.WithResource(resource(r)),
				tracer.WithType(spanTypeWeb),
				tracer.WithTags(map[string]interface{}{
					"http.method": r.Method,
					"http.url":    r.URL.Path,
				}),
			)

			// Deferred handlers run in reverse order: the recover handler
			// annotates the fault and re-raises, then the finish handler
			// closes the trace while the panic keeps unwinding.
			defer func() {
				_, _, _ = cfg.Tracer.FinishTrace(ctx)
			}()
			defer func() {
				if rc := recover(); rc != nil {
					_, _ = cfg.Tracer.SpanError(ctx, panicError(rc), tracer.WithErrorStack(string(debug.Stack())))
					_, _ = cfg.Tracer.UpdateTopSpan(ctx, tracer.WithTag("http.status_code", http.StatusInternalServerError))
					panic(rc)
				}
			}()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			_, _ = cfg.Tracer.UpdateTopSpan(ctx, tracer.WithTag("http.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				_, _ = cfg.Tracer.SpanError(ctx, fmt.Errorf("request failed with status %d", rec.status))
			}
		})
	}
}

// continueOrStart resumes the trace announced in the request headers, or
// starts a fresh one when the headers carry no usable span context. The
// returned context binds the request trace; ok reports whether any trace is
// active so the caller can fall back to untraced serving.
func continueOrStart(client tracer.Tracer, r *http.Request, name string) (context.Context, bool) {
	ctx := r.Context()
	if sc, err := client.DistributedContext(tracer.HTTPHeadersCarrier(r.Header)); err == nil {
		if newCtx, _, cerr := client.ContinueTrace(ctx, name, sc); cerr == nil {
			return newCtx, true
		}
		return ctx, false
	}
	if newCtx, _, err := client.StartTrace(ctx, name); err == nil {
		return newCtx, true
	}
	return ctx, false
}

// statusRecorder captures the response status for span tagging while
// streaming everything else straight through to the wrapped writer.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// WriteHeader records the first status code written. Later calls pass
// through so net/http can log its duplicate-WriteHeader warning, but the
// recorded status stays the one the client actually received.
func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Write marks the implicit 200 that net/http sends when a handler writes a
// body without calling WriteHeader first.
func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// panicError shapes a recovered panic value into an error for annotation.
// Error values pass through unchanged so type information survives.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
