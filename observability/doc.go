// Package observability provides a unified interface for observing the
// tracing instrumentation's own operations.
//
// # Overview
//
// The observability package defines a single Observer interface that the
// tracer packages use to emit operation events: trace and span lifecycle
// calls, context propagation across boundaries, and trace export. This allows
// applications to watch the health and overhead of their tracing layer in a
// consistent way, without the tracer depending on any specific metrics or
// logging stack.
//
// # Design Philosophy
//
// 1. **Optional**: the tracer packages work perfectly without an observer
// 2. **Unified**: the same interface covers lifecycle, propagation, and export
// 3. **Flexible**: an Observer can implement metrics, logging, or both
// 4. **Generic**: OperationContext works across all packages in this module
// 5. **Non-intrusive**: one nil check and one call per operation
//
// # Usage in the Tracer
//
// The tracer accepts an optional Observer in its configuration:
//
//	import "github.com/aalemi-dev/tracelab/observability"
//
//	cfg := tracer.Config{
//	    Service:  "users-api",
//	    Observer: myObserver, // optional
//	}
//
// Every enabled lifecycle operation then reports a structured event when it
// completes:
//
//	observability.OperationContext{
//	    Component:   "tracer",
//	    Operation:   "finish_trace",
//	    Resource:    "api",        // trace key
//	    SubResource: "request",    // root span name
//	    Duration:    3 * time.Microsecond,
//	    Size:        7,            // spans in the completed trace
//	}
//
// Operations on a disabled tracer never reach the observer; disablement
// short-circuits before any side effect.
//
// # Usage in Applications
//
// Applications implement the Observer interface to handle operations:
//
//	type HealthObserver struct {
//	    log *zap.Logger
//	}
//
//	func (o *HealthObserver) ObserveOperation(ctx observability.OperationContext) {
//	    if ctx.Error != nil {
//	        o.log.Warn("tracer operation failed",
//	            zap.String("operation", ctx.Operation),
//	            zap.String("trace_key", ctx.Resource),
//	            zap.Error(ctx.Error),
//	        )
//	    }
//	}
//
// The metrics package in this module ships a ready-made Prometheus-backed
// Observer; wire it when you want counters and latency histograms for the
// instrumentation itself.
//
// # FX Integration
//
// Wire an observer through dependency injection:
//
//	fx.Provide(
//	    fx.Annotate(
//	        metrics.NewObserver,
//	        fx.As(new(observability.Observer)),
//	    ),
//	)
//
// # OperationContext Fields
//
// The OperationContext struct describes any tracer operation:
//
//   - Component: which package ("tracer", "middleware", "kafkatrace")
//   - Operation: what was done ("start_span", "inject_context", ...)
//   - Resource:  the trace key of the owning tracer instance
//   - SubResource: trace/span name or carrier kind
//   - Duration:  how long it took
//   - Error:     any error that occurred
//   - Size:      spans or header fields involved
//   - Metadata:  additional context
//
// # Examples Across Operations
//
// Span lifecycle:
//
//	OperationContext{
//	    Component:   "tracer",
//	    Operation:   "start_span",
//	    Resource:    "api",
//	    SubResource: "db.query",
//	    Duration:    800 * time.Nanosecond,
//	}
//
// Propagation:
//
//	OperationContext{
//	    Component:   "tracer",
//	    Operation:   "inject_context",
//	    Resource:    "api",
//	    SubResource: "http_headers",
//	    Duration:    1200 * time.Nanosecond,
//	    Size:        4, // header fields written
//	}
//
// Export:
//
//	OperationContext{
//	    Component: "tracer",
//	    Operation: "send_trace",
//	    Resource:  "api",
//	    Duration:  40 * time.Microsecond,
//	    Size:      12, // spans shipped
//	    Error:     nil,
//	}
//
// # Performance
//
// The observer pattern adds minimal overhead:
//   - One nil check per operation
//   - One function call if observer is present
//   - ~1-5 nanoseconds overhead
//   - No allocations if observer is nil
//
// # Thread Safety
//
// Observer implementations must be thread-safe. They will be called
// concurrently from multiple goroutines.
package observability
