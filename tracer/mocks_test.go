package tracer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/tracelab/observability"
)

// newTestClient builds a client on a private registry so tests never share
// process-wide state.
func newTestClient(t *testing.T, cfg Config) *TracerClient {
	t.Helper()
	client, err := NewRegistry().NewClient("test", cfg)
	require.NoError(t, err)
	return client
}

// mockStrategy wraps the real context strategy and records every call, so
// tests can assert both on behavior and on exactly which collaborator
// methods ran.
type mockStrategy struct {
	mu    sync.Mutex
	calls map[string]int
	inner *ContextStrategy
}

func newMockStrategy() *mockStrategy {
	return &mockStrategy{
		calls: make(map[string]int),
		inner: NewContextStrategy(),
	}
}

func (m *mockStrategy) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

// TotalCalls reports how many strategy methods ran, across all methods.
func (m *mockStrategy) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *mockStrategy) GetTrace(ctx context.Context, key Key) (*Trace, error) {
	m.record("GetTrace")
	return m.inner.GetTrace(ctx, key)
}

func (m *mockStrategy) GetSpan(ctx context.Context, key Key) (*Span, error) {
	m.record("GetSpan")
	return m.inner.GetSpan(ctx, key)
}

func (m *mockStrategy) PushSpan(ctx context.Context, key Key, span *Span) (context.Context, error) {
	m.record("PushSpan")
	return m.inner.PushSpan(ctx, key, span)
}

func (m *mockStrategy) PopSpan(ctx context.Context, key Key) (context.Context, *Span, error) {
	m.record("PopSpan")
	return m.inner.PopSpan(ctx, key)
}

func (m *mockStrategy) PutTrace(ctx context.Context, key Key, trace *Trace) (context.Context, error) {
	m.record("PutTrace")
	return m.inner.PutTrace(ctx, key, trace)
}

func (m *mockStrategy) DeleteTrace(ctx context.Context, key Key) (context.Context, error) {
	m.record("DeleteTrace")
	return m.inner.DeleteTrace(ctx, key)
}

// Header names the mock adapter uses as its wire format.
const (
	headerTraceID  = "X-Trace-Id"
	headerParentID = "X-Parent-Id"
	headerPriority = "X-Priority"
	headerBaggage  = "X-Baggage-"
)

// mockAdapter implements a real text-map wire format so propagation tests
// can round-trip contexts, and records every call for disabled-state
// assertions.
type mockAdapter struct {
	mu         sync.Mutex
	calls      map[string]int
	fields     map[string]interface{}
	extractErr error
	injectErr  error
}

func newMockAdapter() *mockAdapter {
	return &mockAdapter{calls: make(map[string]int)}
}

func (a *mockAdapter) record(method string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls[method]++
}

func (a *mockAdapter) TotalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, n := range a.calls {
		total += n
	}
	return total
}

func (a *mockAdapter) DefaultSpanFields(service, spanType string) map[string]interface{} {
	a.record("DefaultSpanFields")
	return a.fields
}

func (a *mockAdapter) ExtractContext(carrier interface{}) (SpanContext, error) {
	a.record("ExtractContext")
	if a.extractErr != nil {
		return SpanContext{}, a.extractErr
	}
	reader, ok := carrier.(TextMapReader)
	if !ok {
		return SpanContext{}, fmt.Errorf("mock adapter: unsupported carrier %T", carrier)
	}

	sc := SpanContext{Priority: 1}
	err := reader.ForeachKey(func(key, val string) error {
		switch {
		case strings.EqualFold(key, headerTraceID):
			id, perr := strconv.ParseUint(val, 10, 64)
			if perr != nil {
				return perr
			}
			sc.TraceID = id
		case strings.EqualFold(key, headerParentID):
			id, perr := strconv.ParseUint(val, 10, 64)
			if perr != nil {
				return perr
			}
			sc.ParentID = id
		case strings.EqualFold(key, headerPriority):
			p, perr := strconv.Atoi(val)
			if perr != nil {
				return perr
			}
			sc.Priority = p
		case strings.HasPrefix(strings.ToLower(key), strings.ToLower(headerBaggage)):
			if sc.Baggage == nil {
				sc.Baggage = map[string]string{}
			}
			sc.Baggage[key[len(headerBaggage):]] = val
		}
		return nil
	})
	if err != nil {
		return SpanContext{}, err
	}
	if sc.TraceID == 0 {
		return SpanContext{}, fmt.Errorf("mock adapter: no trace headers present")
	}
	return sc, nil
}

func (a *mockAdapter) InjectContext(carrier interface{}, sc SpanContext) error {
	a.record("InjectContext")
	if a.injectErr != nil {
		return a.injectErr
	}
	writer, ok := carrier.(TextMapWriter)
	if !ok {
		return fmt.Errorf("mock adapter: unsupported carrier %T", carrier)
	}
	writer.Set(headerTraceID, strconv.FormatUint(sc.TraceID, 10))
	writer.Set(headerParentID, strconv.FormatUint(sc.ParentID, 10))
	writer.Set(headerPriority, strconv.Itoa(sc.Priority))
	for k, v := range sc.Baggage {
		writer.Set(headerBaggage+k, v)
	}
	return nil
}

// mockSender records every finished trace it receives.
type mockSender struct {
	mu     sync.Mutex
	traces []*Trace
	err    error
}

func newMockSender() *mockSender {
	return &mockSender{}
}

func (s *mockSender) Send(trace *Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces = append(s.traces, trace)
	return s.err
}

func (s *mockSender) Sent() []*Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Trace, len(s.traces))
	copy(out, s.traces)
	return out
}

func (s *mockSender) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.traces)
}

// closingSender additionally implements io.Closer for lifecycle tests.
type closingSender struct {
	mockSender
	closed bool
}

func (s *closingSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *closingSender) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// recordingObserver keeps the observed operations in order, so tests can
// assert on operation sequencing, not just counts.
type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(op observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
}

func (o *recordingObserver) Operations() []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]observability.OperationContext, len(o.ops))
	copy(out, o.ops)
	return out
}

func (o *recordingObserver) OperationNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, 0, len(o.ops))
	for _, op := range o.ops {
		names = append(names, op.Operation)
	}
	return names
}
