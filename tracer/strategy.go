package tracer

import (
	"context"
)

// activeTraceKey is the private context key binding a trace to a context
// chain. It embeds the tracer Key so each tracer identity gets its own
// binding and concurrently used tracers never observe each other's state.
type activeTraceKey struct {
	key Key
}

// ContextStrategy is the default Strategy: the current trace is a value on
// the context.Context chain. One execution context equals one context chain,
// so concurrent request handlers are isolated without any locking; the
// Strategy's contract requires callers not to share one chain between
// goroutines that trace independently.
//
// PutTrace and DeleteTrace derive new contexts; the stack operations mutate
// the bound Trace in place and return the context unchanged, so pushing and
// popping spans deep in a call tree needs no context re-threading.
type ContextStrategy struct{}

// NewContextStrategy creates the context-chain storage strategy.
func NewContextStrategy() *ContextStrategy {
	return &ContextStrategy{}
}

// GetTrace returns the trace bound to ctx for key, or ErrNoTraceContext.
// A finished trace reads as absent: context chains are immutable, so a
// caller holding a context from before the finish must not be able to act
// on the closed trace through it.
func (s *ContextStrategy) GetTrace(ctx context.Context, key Key) (*Trace, error) {
	trace, ok := ctx.Value(activeTraceKey{key: key}).(*Trace)
	if !ok || trace == nil || trace.finished {
		return nil, ErrNoTraceContext
	}
	return trace, nil
}

// GetSpan returns the current span of the bound trace. No bound trace
// reports ErrNoTraceContext; an empty span stack reports ErrNoSpanContext.
func (s *ContextStrategy) GetSpan(ctx context.Context, key Key) (*Span, error) {
	trace, err := s.GetTrace(ctx, key)
	if err != nil {
		return nil, err
	}
	span := trace.Top()
	if span == nil {
		return nil, ErrNoSpanContext
	}
	return span, nil
}

// PushSpan makes span the current span of the bound trace.
func (s *ContextStrategy) PushSpan(ctx context.Context, key Key, span *Span) (context.Context, error) {
	trace, err := s.GetTrace(ctx, key)
	if err != nil {
		return ctx, err
	}
	trace.Stack = append(trace.Stack, span)
	return ctx, nil
}

// PopSpan removes and returns the current span of the bound trace.
func (s *ContextStrategy) PopSpan(ctx context.Context, key Key) (context.Context, *Span, error) {
	trace, err := s.GetTrace(ctx, key)
	if err != nil {
		return ctx, nil, err
	}
	n := len(trace.Stack)
	if n == 0 {
		return ctx, nil, ErrNoSpanContext
	}
	span := trace.Stack[n-1]
	trace.Stack = trace.Stack[:n-1]
	return ctx, span, nil
}

// PutTrace binds trace as the current trace for key on a derived context.
func (s *ContextStrategy) PutTrace(ctx context.Context, key Key, trace *Trace) (context.Context, error) {
	return context.WithValue(ctx, activeTraceKey{key: key}, trace), nil
}

// DeleteTrace clears the binding for key on a derived context. A typed nil
// shadows any binding further up the chain.
func (s *ContextStrategy) DeleteTrace(ctx context.Context, key Key) (context.Context, error) {
	return context.WithValue(ctx, activeTraceKey{key: key}, (*Trace)(nil)), nil
}
