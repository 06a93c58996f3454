package tracer

import (
	"context"
)

// Tracer is the full operation set every tracer instance exposes. It covers
// configuration, the trace/span lifecycle, scoped blocks, and context
// propagation across process boundaries.
//
// This interface is implemented by the concrete *TracerClient type; depend on
// the interface in application code and on the concrete type only where you
// construct it.
//
// Every operation resolves its effective configuration fresh from the stored
// record plus the call-site options, so a Configure call takes effect for all
// subsequent operations without rebuilding clients. Operations on a disabled
// tracer return ErrTracerDisabled (or report "none" for the pure queries)
// without touching any collaborator.
type Tracer interface {
	// Key reports the identity of this tracer instance.
	Key() Key

	// Configure layers the given options over the stored configuration and
	// persists the result. The full record is always persisted, even when
	// the options disable the tracer, so a later Configure can re-enable it.
	Configure(opts ...Option)

	// StartTrace opens a new trace with a root span of the given name and
	// binds it to the returned context. Fails with ErrTraceAlreadyPresent
	// when the context already carries an active trace for this tracer.
	StartTrace(ctx context.Context, name string, opts ...Option) (context.Context, *Trace, error)

	// StartSpan opens a child span under the current span (or a parentless
	// span when the trace has no active span). Fails with ErrNoTraceContext
	// when no trace is active.
	StartSpan(ctx context.Context, name string, opts ...Option) (context.Context, *Span, error)

	// UpdateSpan merges the span-level options into the current span.
	UpdateSpan(ctx context.Context, opts ...Option) (*Span, error)

	// UpdateTopSpan merges the span-level options into the root span of the
	// current trace, wherever in the stack the caller currently is.
	UpdateTopSpan(ctx context.Context, opts ...Option) (*Span, error)

	// FinishTrace completes every still-open span, hands the finished trace
	// to the configured Sender, and clears the current-trace binding.
	// The Strategy, Adapter, and Sender used are always the stored ones,
	// regardless of call-site options.
	FinishTrace(ctx context.Context, opts ...Option) (context.Context, *Trace, error)

	// FinishSpan completes the current span and makes its parent current
	// again. Resolution follows the same stored-collaborator rule as
	// FinishTrace.
	FinishSpan(ctx context.Context, opts ...Option) (context.Context, *Span, error)

	// SpanError annotates the current span with the given error and a
	// captured stack trace without finishing the span.
	SpanError(ctx context.Context, spanErr error, opts ...Option) (*Span, error)

	// ContinueTrace adopts an inbound SpanContext as the basis for a new
	// current trace, as received from an external caller. Fails with
	// ErrInvalidContext when the context is malformed.
	ContinueTrace(ctx context.Context, name string, sc SpanContext, opts ...Option) (context.Context, *Trace, error)

	// ContinueTraceWithIDs is the preserved legacy call shape taking raw
	// trace and parent span identifiers.
	//
	// Deprecated: Use ContinueTrace with a SpanContext. This form exists for
	// callers of the historical id-based signature.
	ContinueTraceWithIDs(ctx context.Context, name string, traceID, parentID uint64, opts ...Option) (context.Context, *Trace, error)

	// ContinueTraceFromSpan starts a new current trace seeded from an
	// already-materialized span, for hand-offs that pass whole spans between
	// execution contexts instead of wire-format headers.
	ContinueTraceFromSpan(ctx context.Context, name string, span *Span, opts ...Option) (context.Context, *Trace, error)

	// CurrentTraceID reports the active trace's id. The second return is
	// false when the tracer is disabled or no trace is active.
	CurrentTraceID(ctx context.Context, opts ...Option) (uint64, bool)

	// CurrentSpanID reports the active span's id. The second return is false
	// when the tracer is disabled or no span is active.
	CurrentSpanID(ctx context.Context, opts ...Option) (uint64, bool)

	// CurrentSpan returns the active span, or nil when the tracer is
	// disabled or none is active.
	CurrentSpan(ctx context.Context, opts ...Option) *Span

	// CurrentContext builds the portable SpanContext describing the caller's
	// position in the active trace, suitable for crossing a boundary.
	CurrentContext(ctx context.Context, opts ...Option) (SpanContext, error)

	// DistributedContext extracts a SpanContext from an inbound carrier
	// (request headers, message headers) via the configured Adapter.
	DistributedContext(carrier interface{}, opts ...Option) (SpanContext, error)

	// InjectContext writes the current trace position into an outbound
	// carrier via the configured Adapter. Best-effort: on any error,
	// including a disabled tracer or no active trace, the carrier is left
	// untouched and no error is reported.
	InjectContext(ctx context.Context, carrier interface{}, opts ...Option)

	// Trace runs fn inside a trace scope: the trace is started before fn and
	// finished on every exit path. A panic inside fn is annotated on the
	// span and re-raised unchanged; a returned error is annotated and
	// returned.
	Trace(ctx context.Context, name string, fn func(context.Context) error, opts ...Option) error

	// Span runs fn inside a span scope with the same guarantees as Trace,
	// except that only the span is finished; the surrounding trace stays
	// open.
	Span(ctx context.Context, name string, fn func(context.Context) error, opts ...Option) error
}

// Strategy stores the "current trace" state per execution context. The core
// never touches that state directly - every read and mutation goes through
// this contract, so the Strategy alone decides how concurrent execution
// contexts are isolated from each other.
//
// Methods that change the binding return a (possibly derived) context; pure
// storage backends return the input context unchanged. All methods receive
// the owning tracer's Key so one Strategy value can serve many tracers
// without sharing state between them.
type Strategy interface {
	// GetTrace returns the trace bound to the context, or ErrNoTraceContext.
	GetTrace(ctx context.Context, key Key) (*Trace, error)

	// GetSpan returns the current span of the bound trace. It reports
	// ErrNoTraceContext when no trace is bound and ErrNoSpanContext when the
	// trace's span stack is empty.
	GetSpan(ctx context.Context, key Key) (*Span, error)

	// PushSpan makes span the current span of the bound trace.
	PushSpan(ctx context.Context, key Key, span *Span) (context.Context, error)

	// PopSpan removes and returns the current span of the bound trace.
	PopSpan(ctx context.Context, key Key) (context.Context, *Span, error)

	// PutTrace binds trace as the current trace.
	PutTrace(ctx context.Context, key Key, trace *Trace) (context.Context, error)

	// DeleteTrace clears the current-trace binding.
	DeleteTrace(ctx context.Context, key Key) (context.Context, error)
}

// Adapter supplies backend-specific span defaults and the wire format for
// trace propagation. Implementations decide header names, encodings, and
// which extra fields (priority, baggage) cross the boundary.
type Adapter interface {
	// DefaultSpanFields returns the tags a root span should carry for the
	// given service and span type before call-site options are applied.
	DefaultSpanFields(service, spanType string) map[string]interface{}

	// ExtractContext reads a SpanContext out of an inbound carrier. The
	// accepted carrier shapes are adapter-defined; TextMapReader is the
	// conventional one.
	ExtractContext(carrier interface{}) (SpanContext, error)

	// InjectContext writes a SpanContext into an outbound carrier per the
	// adapter's wire convention.
	InjectContext(carrier interface{}, sc SpanContext) error
}

// Sender ships completed traces to a backend. Send is called synchronously
// by FinishTrace; implementations that perform I/O should queue internally
// and flush out-of-band. A Send failure is logged and observed but never
// fails the FinishTrace call.
type Sender interface {
	Send(trace *Trace) error
}
