package tracer

import "errors"

// Package-level error variables for the failure modes of lifecycle and
// propagation operations. Operations report these as return values and never
// panic on missing context; match them with errors.Is.
var (
	// ErrTracerDisabled is returned by every operation whose resolved
	// configuration has Disabled set. Disablement is detected before any
	// Strategy, Adapter, or Sender call, so a disabled tracer produces no
	// side effects at all.
	ErrTracerDisabled = errors.New("tracer: tracer is disabled")

	// ErrNoTraceContext is returned when an operation needs an active trace
	// and the current execution context has none.
	ErrNoTraceContext = errors.New("tracer: no trace is currently active")

	// ErrNoSpanContext is returned when an operation needs an active span
	// and the current trace's span stack is empty.
	ErrNoSpanContext = errors.New("tracer: no span is currently active")

	// ErrInvalidContext is returned by continue operations when the supplied
	// span context is malformed (zero trace id, nil span), and by extraction
	// when no adapter is configured to interpret the carrier.
	ErrInvalidContext = errors.New("tracer: span context is invalid")

	// ErrTraceAlreadyPresent is returned when a start or continue operation
	// runs in an execution context that already carries an active trace for
	// the same tracer. Only one trace may be current at a time.
	ErrTraceAlreadyPresent = errors.New("tracer: a trace is already active in this context")

	// ErrInvalidConfiguration is returned by constructors when the supplied
	// configuration cannot identify a tracer.
	ErrInvalidConfiguration = errors.New("tracer: invalid configuration")
)
