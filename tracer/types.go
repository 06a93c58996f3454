package tracer

import (
	"fmt"
	"time"
)

// Key uniquely identifies one tracer definition. Every client owns exactly
// one Key; it names the configuration slot in the registry and the binding
// under which the current trace is stored by the Strategy. Distinct keys are
// fully independent: separate configuration, separate current-trace state,
// no shared mutable data.
type Key string

// Trace is the root tracing unit for one logical request or operation.
// It is created by StartTrace (or one of the continue operations) and
// destroyed by FinishTrace. Spans within a trace form a strict LIFO stack:
// the last element of Stack is the current span.
type Trace struct {
	// ID is the trace identifier shared by every span in the trace.
	ID uint64 `json:"trace_id"`

	// Priority is the sampling priority adopted from an inbound SpanContext,
	// or 1 for traces started locally.
	Priority int `json:"priority"`

	// Baggage carries opaque key/value pairs that travel with the trace
	// across process boundaries.
	Baggage map[string]string `json:"baggage,omitempty"`

	// Stack holds the active (unfinished) spans, oldest first. Only the
	// Strategy pushes and pops it; the last element is the current span.
	Stack []*Span `json:"-"`

	// Spans accumulates finished spans until the trace itself finishes and
	// the whole set is handed to the Sender.
	Spans []*Span `json:"spans"`

	// finished flips when the trace completes. A finished trace still bound
	// to a context chain reads as absent, so a stale binding can never be
	// finished (and shipped) a second time.
	finished bool
}

// Top returns the current span (the most recently started, unfinished one),
// or nil when the stack is empty.
func (t *Trace) Top() *Span {
	if len(t.Stack) == 0 {
		return nil
	}
	return t.Stack[len(t.Stack)-1]
}

// Root returns the oldest still-active span, or nil when the stack is empty.
// While the root span is unfinished this is the span the trace was started
// with.
func (t *Trace) Root() *Span {
	if len(t.Stack) == 0 {
		return nil
	}
	return t.Stack[0]
}

// recordFinished moves a completed span into the finished set.
func (t *Trace) recordFinished(span *Span) {
	t.Spans = append(t.Spans, span)
}

// finishAll stamps every still-active span with the given completion time,
// moves it to the finished set, and marks the trace itself finished.
// FinishTrace uses this so that a trace closed with open spans still ships
// complete timing data.
func (t *Trace) finishAll(at time.Time) {
	for i := len(t.Stack) - 1; i >= 0; i-- {
		span := t.Stack[i]
		if span.FinishTime.IsZero() {
			span.FinishTime = at
		}
		t.Spans = append(t.Spans, span)
	}
	t.Stack = nil
	t.finished = true
}

// Span is one unit of work nested within a Trace.
type Span struct {
	// ID is the span identifier, unique within the trace.
	ID uint64 `json:"span_id"`

	// TraceID is the identifier of the owning trace.
	TraceID uint64 `json:"trace_id"`

	// ParentID is the identifier of the parent span, or zero for a span with
	// no parent (a locally started root, or a root whose parent lives in
	// another process).
	ParentID uint64 `json:"parent_id,omitempty"`

	// Name describes the operation the span measures, such as "request" or
	// "db.query".
	Name string `json:"name"`

	// Resource narrows the operation to a concrete target, such as
	// "GET /users/:id". Defaults to Name when never set.
	Resource string `json:"resource,omitempty"`

	// Service is the logical service name the span is attributed to.
	Service string `json:"service,omitempty"`

	// Type is the span category, such as "web" or "db". The Services mapping
	// in the configuration supplies per-service defaults.
	Type string `json:"type,omitempty"`

	// Env is the deployment environment label, such as "production".
	Env string `json:"env,omitempty"`

	// StartTime is when the span was started.
	StartTime time.Time `json:"start_time"`

	// FinishTime is when the span completed; zero while the span is active.
	FinishTime time.Time `json:"finish_time,omitempty"`

	// Tags holds arbitrary metadata attached to the span.
	Tags map[string]interface{} `json:"tags,omitempty"`

	// Error carries the error annotation set by SpanError or a scope fault,
	// or nil for a clean span.
	Error *ErrorInfo `json:"error,omitempty"`
}

// Duration reports how long the span ran, or zero while it is unfinished.
func (s *Span) Duration() time.Duration {
	if s.FinishTime.IsZero() {
		return 0
	}
	return s.FinishTime.Sub(s.StartTime)
}

// setTag attaches one metadata entry, allocating the map lazily.
func (s *Span) setTag(key string, value interface{}) {
	if s.Tags == nil {
		s.Tags = make(map[string]interface{})
	}
	s.Tags[key] = value
}

// child derives a new span under this one. The child inherits the parent's
// service, resource, type, environment, and tags; identity, name, and timing
// start fresh.
func (s *Span) child(name string, id uint64, start time.Time) *Span {
	child := &Span{
		ID:        id,
		TraceID:   s.TraceID,
		ParentID:  s.ID,
		Name:      name,
		Resource:  s.Resource,
		Service:   s.Service,
		Type:      s.Type,
		Env:       s.Env,
		StartTime: start,
	}
	if len(s.Tags) > 0 {
		child.Tags = make(map[string]interface{}, len(s.Tags))
		for k, v := range s.Tags {
			child.Tags[k] = v
		}
	}
	return child
}

// ErrorInfo is the error annotation attached to a span.
type ErrorInfo struct {
	// Message is the error's text.
	Message string `json:"message"`

	// Type is the dynamic Go type of the error value.
	Type string `json:"type"`

	// Stack is the captured stack trace, when one was available at
	// annotation time.
	Stack string `json:"stack,omitempty"`
}

// newErrorInfo builds the annotation for an error value.
func newErrorInfo(err error, stack string) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{
		Message: err.Error(),
		Type:    fmt.Sprintf("%T", err),
		Stack:   stack,
	}
}

// SpanContext is the portable descriptor used to continue a trace across a
// process, thread, or network boundary. It is a value type; treat it as
// immutable.
type SpanContext struct {
	// TraceID identifies the trace being continued. Zero marks the context
	// as invalid.
	TraceID uint64 `json:"trace_id"`

	// ParentID is the span on the caller's side that becomes the parent of
	// the first span started on this side.
	ParentID uint64 `json:"parent_id"`

	// Priority is the sampling priority decided upstream.
	Priority int `json:"priority"`

	// Baggage carries opaque key/value pairs propagated with the trace.
	Baggage map[string]string `json:"baggage,omitempty"`
}

// copyBaggage clones a baggage map so adopted contexts and exported traces
// never alias caller-owned maps.
func copyBaggage(baggage map[string]string) map[string]string {
	if len(baggage) == 0 {
		return nil
	}
	out := make(map[string]string, len(baggage))
	for k, v := range baggage {
		out[k] = v
	}
	return out
}
