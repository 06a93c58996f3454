package tracer

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Trace runs fn inside a trace scope.
//
// The scope guarantees, for every invocation:
//   - StartTrace is attempted exactly once before fn runs. A start failure
//     (disabled tracer, trace already present) is not surfaced; fn still
//     runs, with the original context.
//   - fn runs synchronously in the caller's control flow.
//   - If fn panics, SpanError records the fault and the stack from the
//     panic site exactly once, and the original panic value is re-raised
//     unchanged.
//   - If fn returns a non-nil error, SpanError records it and the scope
//     returns that error.
//   - FinishTrace is attempted exactly once on every exit path - normal
//     return, error return, and panic - always after any error annotation.
func (c *TracerClient) Trace(ctx context.Context, name string, fn func(context.Context) error, opts ...Option) error {
	scopeCtx := ctx
	if newCtx, _, err := c.StartTrace(ctx, name, opts...); err == nil {
		scopeCtx = newCtx
	}

	// Deferred handlers run in reverse order: the recover handler annotates
	// the fault and re-raises, then the finish handler closes the trace
	// while the panic keeps unwinding.
	defer func() {
		_, _, _ = c.FinishTrace(scopeCtx)
	}()
	defer func() {
		if r := recover(); r != nil {
			_, _ = c.SpanError(scopeCtx, panicError(r), WithErrorStack(string(debug.Stack())))
			panic(r)
		}
	}()

	if err := fn(scopeCtx); err != nil {
		_, _ = c.SpanError(scopeCtx, err)
		return err
	}
	return nil
}

// Span runs fn inside a span scope. The guarantees match Trace, with
// StartSpan/FinishSpan in place of the trace pair: a span scope never closes
// the surrounding trace, so nested span scopes always finish their span
// before the enclosing trace scope finishes the trace.
func (c *TracerClient) Span(ctx context.Context, name string, fn func(context.Context) error, opts ...Option) error {
	scopeCtx := ctx
	if newCtx, _, err := c.StartSpan(ctx, name, opts...); err == nil {
		scopeCtx = newCtx
	}

	defer func() {
		_, _, _ = c.FinishSpan(scopeCtx)
	}()
	defer func() {
		if r := recover(); r != nil {
			_, _ = c.SpanError(scopeCtx, panicError(r), WithErrorStack(string(debug.Stack())))
			panic(r)
		}
	}()

	if err := fn(scopeCtx); err != nil {
		_, _ = c.SpanError(scopeCtx, err)
		return err
	}
	return nil
}

// panicError shapes a recovered panic value into an error for annotation.
// Error values pass through unchanged so annotations keep their type.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
