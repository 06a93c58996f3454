package observability

import "time"

// Observer is a unified interface for observing the health of the tracing
// instrumentation itself. It allows external code to watch tracer operations
// (trace/span lifecycle, context propagation, trace export) without coupling
// the tracer packages to a specific metrics or logging implementation.
//
// This interface is optional - the tracer packages work perfectly fine
// without an observer.
type Observer interface {
	// ObserveOperation is called when a tracer operation completes.
	// It provides all context about the operation in a structured format.
	ObserveOperation(ctx OperationContext)
}

// OperationContext contains all information about one tracer operation.
// This struct is designed to be generic enough to work across all packages
// in this module while providing enough detail for health dashboards and
// latency investigations.
type OperationContext struct {
	// Component identifies which package performed the operation. The
	// tracer client reports "tracer"; other instrumentation layers built
	// on this contract report their own name.
	Component string

	// Operation describes what operation was performed.
	// Examples:
	//   Lifecycle:   "start_trace", "start_span", "finish_span", "finish_trace"
	//   Annotation:  "update_span", "update_top_span", "span_error"
	//   Propagation: "continue_trace", "distributed_context", "inject_context"
	//   Export:      "send_trace"
	Operation string

	// Resource identifies the tracer instance the operation ran against,
	// i.e. the trace key of the owning tracer definition.
	// Examples: "api", "worker", "payments"
	Resource string

	// SubResource provides additional context (optional).
	// Examples:
	//   Lifecycle:   the trace or span name ("request", "db.query")
	//   Propagation: the carrier kind ("http_headers", "text_map")
	SubResource string

	// Duration is how long the operation took from start to completion.
	// For pure in-memory lifecycle operations this is typically in the
	// nanosecond to microsecond range; export operations may take longer.
	Duration time.Duration

	// Error is the error returned by the operation, if any.
	// nil indicates successful operation. Sentinel errors such as a missing
	// trace context show up here unchanged, so observers can distinguish
	// misuse from export failures.
	Error error

	// Size represents the amount of data involved in the operation (optional).
	// Examples:
	//   finish_trace / send_trace: number of spans in the completed trace
	Size int64

	// Metadata provides additional operation-specific information (optional).
	// This map can contain any extra context that doesn't fit in the standard
	// fields. The built-in client leaves it empty; custom instrumentation
	// built on this contract can attach whatever its observers need.
	Metadata map[string]interface{}
}
