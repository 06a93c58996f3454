package tracer

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// TextMapWriter is the outbound half of the conventional carrier contract:
// adapters write their wire-format fields through Set. http.Header, kafka
// message headers, and plain maps all adapt to it.
type TextMapWriter interface {
	// Set stores one propagation field. Repeated keys overwrite.
	Set(key, val string)
}

// TextMapReader is the inbound half of the conventional carrier contract:
// adapters iterate the carrier's fields with ForeachKey and pick out the
// ones they understand.
type TextMapReader interface {
	// ForeachKey calls handler for every field in the carrier. A non-nil
	// handler error aborts the iteration and is returned unchanged.
	ForeachKey(handler func(key, val string) error) error
}

// TextMapCarrier is a map-backed carrier for tests and in-process hand-off.
type TextMapCarrier map[string]string

// Set implements TextMapWriter.
func (c TextMapCarrier) Set(key, val string) {
	c[key] = val
}

// ForeachKey implements TextMapReader.
func (c TextMapCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, v := range c {
		if err := handler(k, v); err != nil {
			return err
		}
	}
	return nil
}

// HTTPHeadersCarrier adapts http.Header to the carrier contract for use with
// inbound requests and outbound clients.
type HTTPHeadersCarrier http.Header

// Set implements TextMapWriter with canonical header formatting.
func (c HTTPHeadersCarrier) Set(key, val string) {
	http.Header(c).Set(key, val)
}

// ForeachKey implements TextMapReader, visiting every value of every header.
func (c HTTPHeadersCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, vals := range c {
		for _, v := range vals {
			if err := handler(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// CurrentContext builds the portable SpanContext for the caller's position
// in the active trace: the trace id, the current span's id as the parent for
// the next hop, and the trace's priority and baggage.
//
// Errors: ErrTracerDisabled, ErrNoTraceContext, ErrNoSpanContext.
func (c *TracerClient) CurrentContext(ctx context.Context, opts ...Option) (SpanContext, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return SpanContext{}, err
	}

	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		return SpanContext{}, terr
	}
	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		return SpanContext{}, serr
	}

	return SpanContext{
		TraceID:  trace.ID,
		ParentID: span.ID,
		Priority: trace.Priority,
		Baggage:  copyBaggage(trace.Baggage),
	}, nil
}

// DistributedContext extracts a SpanContext from an inbound carrier via the
// configured Adapter. The carrier shape and header names are
// adapter-defined; extraction errors pass through unchanged so callers can
// distinguish "no trace headers" from malformed ones.
//
// Errors: ErrTracerDisabled, ErrInvalidContext (no adapter configured), or
// whatever the adapter reports.
func (c *TracerClient) DistributedContext(carrier interface{}, opts ...Option) (SpanContext, error) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return SpanContext{}, err
	}
	start := time.Now()

	if cfg.Adapter == nil {
		return SpanContext{}, ErrInvalidContext
	}

	sc, xerr := cfg.Adapter.ExtractContext(carrier)
	c.observe(cfg, "distributed_context", carrierKind(carrier), start, xerr, 0)
	if xerr != nil {
		return SpanContext{}, xerr
	}
	return sc, nil
}

// InjectContext writes the current trace position into an outbound carrier
// via the configured Adapter. Propagation is best-effort by contract: on a
// disabled tracer, a missing trace or span, a missing adapter, or an
// adapter failure, the carrier is left exactly as it was and nothing is
// reported. Callers can always send their request.
func (c *TracerClient) InjectContext(ctx context.Context, carrier interface{}, opts ...Option) {
	cfg, err := c.resolve(opts)
	if err != nil {
		return
	}
	if cfg.Adapter == nil {
		return
	}

	trace, terr := cfg.Strategy.GetTrace(ctx, cfg.TraceKey)
	if terr != nil {
		return
	}
	span, serr := cfg.Strategy.GetSpan(ctx, cfg.TraceKey)
	if serr != nil {
		return
	}

	sc := SpanContext{
		TraceID:  trace.ID,
		ParentID: span.ID,
		Priority: trace.Priority,
		Baggage:  copyBaggage(trace.Baggage),
	}

	start := time.Now()
	ierr := cfg.Adapter.InjectContext(carrier, sc)
	c.observe(cfg, "inject_context", carrierKind(carrier), start, ierr, 0)
}

// carrierKind names the carrier shape for observation purposes.
func carrierKind(carrier interface{}) string {
	switch carrier.(type) {
	case HTTPHeadersCarrier, http.Header:
		return "http_headers"
	case TextMapCarrier:
		return "text_map"
	default:
		return fmt.Sprintf("%T", carrier)
	}
}
