package tracer

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentContext_BuildsPortableDescriptor(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})
	ctx, trace, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	trace.Baggage = map[string]string{"tenant": "acme"}
	span := client.CurrentSpan(ctx)
	require.NotNil(t, span)

	sc, err := client.CurrentContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, trace.ID, sc.TraceID)
	assert.Equal(t, span.ID, sc.ParentID, "the current span becomes the next hop's parent")
	assert.Equal(t, 1, sc.Priority)
	assert.Equal(t, "acme", sc.Baggage["tenant"])

	sc.Baggage["tenant"] = "globex"
	assert.Equal(t, "acme", trace.Baggage["tenant"], "the descriptor must not alias trace baggage")
}

func TestCurrentContext_NoTrace(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})

	_, err := client.CurrentContext(context.Background())

	assert.ErrorIs(t, err, ErrNoTraceContext)
}

func TestCurrentContext_NoSpan(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})
	ctx, _, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	ctx, _, err = client.FinishSpan(ctx)
	require.NoError(t, err)

	_, err = client.CurrentContext(ctx)

	assert.ErrorIs(t, err, ErrNoSpanContext)
}

func TestInjectContext_WritesWireFields(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{Adapter: newMockAdapter()})
	ctx, trace, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	span := client.CurrentSpan(ctx)
	require.NotNil(t, span)

	headers := make(http.Header)
	client.InjectContext(ctx, HTTPHeadersCarrier(headers))

	assert.Equal(t, strconv.FormatUint(trace.ID, 10), headers.Get(headerTraceID))
	assert.Equal(t, strconv.FormatUint(span.ID, 10), headers.Get(headerParentID))
	assert.Equal(t, "1", headers.Get(headerPriority))
}

func TestInjectContext_DisabledLeavesCarrierUntouched(t *testing.T) {
	t.Parallel()
	adapter := newMockAdapter()
	client := newTestClient(t, Config{Disabled: true, Adapter: adapter})

	carrier := TextMapCarrier{"Existing": "value"}
	client.InjectContext(context.Background(), carrier)

	assert.Equal(t, TextMapCarrier{"Existing": "value"}, carrier)
	assert.Equal(t, 0, adapter.TotalCalls())
}

func TestInjectContext_NoTraceLeavesCarrierUntouched(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{Adapter: newMockAdapter()})

	carrier := TextMapCarrier{}
	client.InjectContext(context.Background(), carrier)

	assert.Empty(t, carrier)
}

func TestInjectContext_NoAdapterLeavesCarrierUntouched(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})
	ctx, _, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)

	carrier := TextMapCarrier{}
	client.InjectContext(ctx, carrier)

	assert.Empty(t, carrier)
}

func TestInjectContext_AdapterFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	adapter := newMockAdapter()
	adapter.injectErr = errors.New("header too large")
	recorder := &recordingObserver{}
	client := newTestClient(t, Config{Adapter: adapter, Observer: recorder})
	ctx, _, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)

	carrier := TextMapCarrier{}
	assert.NotPanics(t, func() { client.InjectContext(ctx, carrier) })
	assert.Empty(t, carrier)

	names := recorder.OperationNames()
	assert.Contains(t, names, "inject_context", "the failure is still observed")
}

func TestDistributedContext_RoundTrip(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{Adapter: newMockAdapter()})
	ctx, trace, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	trace.Baggage = map[string]string{"tenant": "acme"}
	span := client.CurrentSpan(ctx)
	require.NotNil(t, span)

	carrier := TextMapCarrier{}
	client.InjectContext(ctx, carrier)

	sc, err := client.DistributedContext(carrier)

	require.NoError(t, err)
	assert.Equal(t, trace.ID, sc.TraceID)
	assert.Equal(t, span.ID, sc.ParentID)
	assert.Equal(t, 1, sc.Priority)
	assert.Equal(t, "acme", sc.Baggage["tenant"])
}

func TestDistributedContext_NoAdapter(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})

	_, err := client.DistributedContext(TextMapCarrier{})

	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestDistributedContext_ExtractionErrorPassesThrough(t *testing.T) {
	t.Parallel()
	adapter := newMockAdapter()
	adapter.extractErr = errors.New("no trace headers")
	client := newTestClient(t, Config{Adapter: adapter})

	_, err := client.DistributedContext(TextMapCarrier{})

	assert.ErrorIs(t, err, adapter.extractErr, "adapter errors reach the caller unchanged")
}

func TestPropagation_CrossProcessHop(t *testing.T) {
	t.Parallel()
	upstream := newTestClient(t, Config{Adapter: newMockAdapter(), Service: "edge"})
	downstream := newTestClient(t, Config{Adapter: newMockAdapter(), Service: "billing"})

	// Upstream side: start a trace and stamp an outbound request.
	upCtx, upTrace, err := upstream.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	upSpan := upstream.CurrentSpan(upCtx)
	require.NotNil(t, upSpan)

	headers := make(http.Header)
	upstream.InjectContext(upCtx, HTTPHeadersCarrier(headers))

	// Downstream side: pick the context out of the inbound request and
	// continue the trace.
	sc, err := downstream.DistributedContext(HTTPHeadersCarrier(headers))
	require.NoError(t, err)

	downCtx, downTrace, err := downstream.ContinueTrace(context.Background(), "handle", sc)
	require.NoError(t, err)

	assert.Equal(t, upTrace.ID, downTrace.ID, "both hops share one trace")
	downSpan := downstream.CurrentSpan(downCtx)
	require.NotNil(t, downSpan)
	assert.Equal(t, upSpan.ID, downSpan.ParentID, "the downstream root hangs off the upstream span")
	assert.Equal(t, "billing", downSpan.Service)
}

func TestHTTPHeadersCarrier_CanonicalKeys(t *testing.T) {
	t.Parallel()
	headers := make(http.Header)
	carrier := HTTPHeadersCarrier(headers)

	carrier.Set("x-trace-id", "42")

	assert.Equal(t, "42", headers.Get("X-Trace-Id"))
}

func TestTextMapCarrier_ForeachKeyStopsOnError(t *testing.T) {
	t.Parallel()
	carrier := TextMapCarrier{"a": "1", "b": "2", "c": "3"}
	stop := errors.New("stop")

	visited := 0
	err := carrier.ForeachKey(func(key, val string) error {
		visited++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}
