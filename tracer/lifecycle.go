package tracer

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// StartTrace opens a new trace whose root span carries the given name. The
// trace becomes current on the returned context; the caller must thread that
// context through the work being traced.
//
// The root span is seeded from the resolved configuration: service and
// environment, the adapter's default span fields for the service, the
// service-to-type mapping, and finally the call-site options, which win over
// everything seeded before them. Resource defaults to the trace name.
//
// Errors: ErrTracerDisabled, ErrTraceAlreadyPresent.
func (c *TracerClient) StartTrace(ctx context.Context, name string, opts ...Option) (context.Context, *Trace, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return ctx, nil, err
	}
	start := time.Now()

	if _, gerr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey); gerr == nil {
		c.observe(cfg, "start_trace", name, start, ErrTraceAlreadyPresent, 0)
		return ctx, nil, ErrTraceAlreadyPresent
	}

	trace := &Trace{ID: generateID(), Priority: 1}
	span := c.newRootSpan(cfg, trace.ID, 0, name)

	ctx, err = cfg.Strategy.PutTrace(ctx, cfg.TraceKey, trace)
	if err != nil {
		c.observe(cfg, "start_trace", name, start, err, 0)
		return ctx, nil, err
	}
	ctx, err = cfg.Strategy.PushSpan(ctx, cfg.TraceKey, span)
	if err != nil {
		c.observe(cfg, "start_trace", name, start, err, 0)
		return ctx, nil, err
	}

	c.logDebug(cfg, "trace started",
		zap.Uint64("trace_id", trace.ID),
		zap.String("name", name),
	)
	c.observe(cfg, "start_trace", name, start, nil, 0)
	return ctx, trace, nil
}

// StartSpan opens a new span nested under the current one. When the trace
// has no active span (its root already finished), the new span starts
// parentless within the same trace.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext.
func (c *TracerClient) StartSpan(ctx context.Context, name string, opts ...Option) (context.Context, *Span, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return ctx, nil, err
	}
	start := time.Now()

	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		c.observe(cfg, "start_span", name, start, terr, 0)
		return ctx, nil, terr
	}

	parent, perr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if perr != nil && !errors.Is(perr, ErrNoSpanContext) {
		c.observe(cfg, "start_span", name, start, perr, 0)
		return ctx, nil, perr
	}

	var span *Span
	if parent != nil {
		span = parent.child(name, generateID(), time.Now())
		applySpanConfig(span, cfg)
	} else {
		span = c.newRootSpan(cfg, trace.ID, 0, name)
	}

	ctx, err = cfg.Strategy.PushSpan(ctx, cfg.TraceKey, span)
	if err != nil {
		c.observe(cfg, "start_span", name, start, err, 0)
		return ctx, nil, err
	}

	c.observe(cfg, "start_span", name, start, nil, 0)
	return ctx, span, nil
}

// UpdateSpan merges the span-level options into the current span.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext, ErrNoSpanContext.
func (c *TracerClient) UpdateSpan(ctx context.Context, opts ...Option) (*Span, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		c.observe(cfg, "update_span", "", start, serr, 0)
		return nil, serr
	}

	applySpanConfig(span, cfg)
	c.observe(cfg, "update_span", span.Name, start, nil, 0)
	return span, nil
}

// UpdateTopSpan merges the span-level options into the root span of the
// current trace. This lets code deep inside a request annotate the request
// span itself, such as recording the response status.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext, ErrNoSpanContext.
func (c *TracerClient) UpdateTopSpan(ctx context.Context, opts ...Option) (*Span, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		c.observe(cfg, "update_top_span", "", start, terr, 0)
		return nil, terr
	}

	root := trace.Root()
	if root == nil {
		c.observe(cfg, "update_top_span", "", start, ErrNoSpanContext, 0)
		return nil, ErrNoSpanContext
	}

	applySpanConfig(root, cfg)
	c.observe(cfg, "update_top_span", root.Name, start, nil, 0)
	return root, nil
}

// FinishTrace completes the current trace: every still-open span gets the
// completion time stamped, the finished trace goes to the Sender, and the
// current-trace binding is cleared on the returned context.
//
// Resolution uses the stored Strategy, Adapter, and Sender regardless of
// call-site options, so a trace always closes against the collaborators it
// was configured with. A Sender failure is logged and observed but does not
// fail the call.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext.
func (c *TracerClient) FinishTrace(ctx context.Context, opts ...Option) (context.Context, *Trace, error) {
	cfg, err := c.resolveUpdate(opts)
	if err != nil {
		return ctx, nil, err
	}
	start := time.Now()

	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		c.observe(cfg, "finish_trace", "", start, terr, 0)
		return ctx, nil, terr
	}

	at := time.Now()
	if !cfg.FinishTime.IsZero() {
		at = cfg.FinishTime
	}
	trace.finishAll(at)

	if cfg.Sender != nil {
		if serr := cfg.Sender.Send(trace); serr != nil {
			c.logError(cfg, "failed to ship finished trace", serr,
				zap.Uint64("trace_id", trace.ID),
				zap.Int("spans", len(trace.Spans)),
			)
			c.observe(cfg, "send_trace", "", start, serr, int64(len(trace.Spans)))
		} else {
			c.observe(cfg, "send_trace", "", start, nil, int64(len(trace.Spans)))
		}
	}

	ctx, derr := cfg.Strategy.DeleteTrace(ctx, cfg.TraceKey)
	if derr != nil {
		c.observe(cfg, "finish_trace", "", start, derr, int64(len(trace.Spans)))
		return ctx, nil, derr
	}

	c.logDebug(cfg, "trace finished",
		zap.Uint64("trace_id", trace.ID),
		zap.Int("spans", len(trace.Spans)),
	)
	c.observe(cfg, "finish_trace", "", start, nil, int64(len(trace.Spans)))
	return ctx, trace, nil
}

// FinishSpan completes the current span and makes its parent current again.
// Span-level options are merged into the span before it is recorded, and
// WithFinishTime overrides the completion timestamp.
//
// Resolution follows the same stored-collaborator rule as FinishTrace.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext, ErrNoSpanContext.
func (c *TracerClient) FinishSpan(ctx context.Context, opts ...Option) (context.Context, *Span, error) {
	cfg, err := c.resolveUpdate(opts)
	if err != nil {
		return ctx, nil, err
	}
	start := time.Now()

	ctx, span, perr := cfg.Strategy.PopSpan(ctx, cfg.TraceKey)
	if perr != nil {
		c.observe(cfg, "finish_span", "", start, perr, 0)
		return ctx, nil, perr
	}

	at := time.Now()
	if !cfg.FinishTime.IsZero() {
		at = cfg.FinishTime
	}
	span.FinishTime = at
	applySpanConfig(span, cfg)

	if trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey); terr == nil {
		trace.recordFinished(span)
	}

	c.observe(cfg, "finish_span", span.Name, start, nil, 1)
	return ctx, span, nil
}

// SpanError annotates the current span with the given error without
// finishing the span. The annotation records the error message, its dynamic
// type, and a stack trace - the one supplied via WithErrorStack when
// present, otherwise one captured here.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext, ErrNoSpanContext.
func (c *TracerClient) SpanError(ctx context.Context, spanErr error, opts ...Option) (*Span, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		c.observe(cfg, "span_error", "", start, serr, 0)
		return nil, serr
	}

	stack := cfg.ErrorStack
	if stack == "" {
		stack = string(debug.Stack())
	}
	span.Error = newErrorInfo(spanErr, stack)
	applySpanConfig(span, cfg)

	c.observe(cfg, "span_error", span.Name, start, nil, 0)
	return span, nil
}

// ContinueTrace adopts an inbound SpanContext as the basis for a new current
// trace, as if the caller's request had arrived from the process that built
// the context. The new trace keeps the inbound trace id, priority, and
// baggage; its root span is parented on the inbound parent id.
//
// Errors: ErrTracerDisabled, ErrTraceAlreadyPresent, ErrInvalidContext.
func (c *TracerClient) ContinueTrace(ctx context.Context, name string, sc SpanContext, opts ...Option) (context.Context, *Trace, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return ctx, nil, err
	}
	start := time.Now()

	if _, gerr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey); gerr == nil {
		c.observe(cfg, "continue_trace", name, start, ErrTraceAlreadyPresent, 0)
		return ctx, nil, ErrTraceAlreadyPresent
	}
	if sc.TraceID == 0 {
		c.observe(cfg, "continue_trace", name, start, ErrInvalidContext, 0)
		return ctx, nil, ErrInvalidContext
	}

	trace := &Trace{
		ID:       sc.TraceID,
		Priority: sc.Priority,
		Baggage:  copyBaggage(sc.Baggage),
	}
	span := c.newRootSpan(cfg, sc.TraceID, sc.ParentID, name)

	ctx, err = cfg.Strategy.PutTrace(ctx, cfg.TraceKey, trace)
	if err != nil {
		c.observe(cfg, "continue_trace", name, start, err, 0)
		return ctx, nil, err
	}
	ctx, err = cfg.Strategy.PushSpan(ctx, cfg.TraceKey, span)
	if err != nil {
		c.observe(cfg, "continue_trace", name, start, err, 0)
		return ctx, nil, err
	}

	c.logDebug(cfg, "trace continued",
		zap.Uint64("trace_id", trace.ID),
		zap.Uint64("parent_id", sc.ParentID),
		zap.String("name", name),
	)
	c.observe(cfg, "continue_trace", name, start, nil, 0)
	return ctx, trace, nil
}

// ContinueTraceWithIDs is the preserved legacy call shape taking raw trace
// and parent span identifiers. It builds a SpanContext with priority 1 and
// delegates to ContinueTrace.
//
// Deprecated: Use ContinueTrace with a SpanContext.
func (c *TracerClient) ContinueTraceWithIDs(ctx context.Context, name string, traceID, parentID uint64, opts ...Option) (context.Context, *Trace, error) {
	return c.ContinueTrace(ctx, name, SpanContext{
		TraceID:  traceID,
		ParentID: parentID,
		Priority: 1,
	}, opts...)
}

// ContinueTraceFromSpan starts a new current trace seeded from an
// already-materialized span: same trace id, root parented on the span. Use
// this when a span value itself is handed across an in-process boundary.
//
// Errors: ErrTracerDisabled, ErrTraceAlreadyPresent, ErrInvalidContext.
func (c *TracerClient) ContinueTraceFromSpan(ctx context.Context, name string, span *Span, opts ...Option) (context.Context, *Trace, error) {
	if span == nil || span.TraceID == 0 {
		// Still collapse to the disabled sentinel first; a disabled tracer
		// reports nothing else.
		if _, err := c.resolve(opts); err != nil {
			return ctx, nil, err
		}
		return ctx, nil, ErrInvalidContext
	}
	return c.ContinueTrace(ctx, name, SpanContext{
		TraceID:  span.TraceID,
		ParentID: span.ID,
		Priority: 1,
	}, opts...)
}

// CurrentTraceID reports the id of the active trace. The second return is
// false when the tracer is disabled or no trace is active.
func (c *TracerClient) CurrentTraceID(ctx context.Context, opts ...Option) (uint64, bool) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return 0, false
	}
	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		return 0, false
	}
	return trace.ID, true
}

// CurrentSpanID reports the id of the active span. The second return is
// false when the tracer is disabled or no span is active.
func (c *TracerClient) CurrentSpanID(ctx context.Context, opts ...Option) (uint64, bool) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return 0, false
	}
	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		return 0, false
	}
	return span.ID, true
}

// CurrentSpan returns the active span, or nil when the tracer is disabled
// or none is active. The returned span is the live value; callers that keep
// it must not mutate it concurrently with lifecycle calls.
func (c *TracerClient) CurrentSpan(ctx context.Context, opts ...Option) *Span {
	cfg, err := c.resolve(opts)
	if err != nil {
		return nil
	}
	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		return nil
	}
	return span
}

// newRootSpan seeds the first span of a trace: identity and timing first,
// then service/env from the configuration, then the adapter's default fields
// for the service, then the call-site span options, which win. Resource
// falls back to the span name and Type to the Services mapping.
func (c *TracerClient) newRootSpan(cfg Config, traceID, parentID uint64, name string) *Span {
	span := &Span{
		ID:        generateID(),
		TraceID:   traceID,
		ParentID:  parentID,
		Name:      name,
		StartTime: time.Now(),
		Service:   cfg.Service,
		Env:       cfg.Env,
	}

	if cfg.Adapter != nil {
		spanType := cfg.Type
		if spanType == "" {
			spanType = cfg.Services[cfg.Service]
		}
		for k, v := range cfg.Adapter.DefaultSpanFields(cfg.Service, spanType) {
			span.setTag(k, v)
		}
	}

	applySpanConfig(span, cfg)

	if span.Resource == "" {
		span.Resource = name
	}
	if span.Type == "" {
		span.Type = cfg.Services[span.Service]
	}
	return span
}

// applySpanConfig merges the span-level fields of a resolved configuration
// into a span. Only fields the configuration actually carries are applied;
// tag maps are copied, never aliased, so stored configuration stays
// immutable.
func applySpanConfig(span *Span, cfg Config) {
	if cfg.Service != "" {
		span.Service = cfg.Service
	}
	if cfg.Env != "" {
		span.Env = cfg.Env
	}
	if cfg.Resource != "" {
		span.Resource = cfg.Resource
	}
	if cfg.Type != "" {
		span.Type = cfg.Type
	}
	for k, v := range cfg.Tags {
		span.setTag(k, v)
	}
	if cfg.Error != nil {
		span.Error = newErrorInfo(cfg.Error, cfg.ErrorStack)
	}
	if !cfg.StartTime.IsZero() {
		span.StartTime = cfg.StartTime
	}
	if !cfg.FinishTime.IsZero() {
		span.FinishTime = cfg.FinishTime
	}
	if span.Type == "" && span.Service != "" {
		span.Type = cfg.Services[span.Service]
	}
}
