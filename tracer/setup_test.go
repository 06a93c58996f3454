package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_EmptyKey(t *testing.T) {
	t.Parallel()

	client, err := NewRegistry().NewClient("", Config{})

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, client)
}

func TestNewClient_PersistsFullRecordWhenDisabled(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()

	_, err := registry.NewClient("api", Config{
		Disabled: true,
		Service:  "user-service",
		Env:      "production",
	})
	require.NoError(t, err)

	stored, found := registry.load("api")
	require.True(t, found)
	assert.True(t, stored.Disabled)
	assert.Equal(t, "user-service", stored.Service, "disabling must not discard the rest of the record")
	assert.Equal(t, "production", stored.Env)
}

func TestNewClient_NormalizesCollaborators(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()

	_, err := registry.NewClient("api", Config{})
	require.NoError(t, err)

	stored, found := registry.load("api")
	require.True(t, found)
	assert.NotNil(t, stored.Strategy)
	assert.NotNil(t, stored.Services)
	assert.Equal(t, Key("api"), stored.TraceKey)
}

func TestNewClient_DefaultRegistry(t *testing.T) {
	t.Parallel()

	client, err := NewClient("setup-default-registry", Config{Service: "user-service"})
	require.NoError(t, err)

	stored, found := DefaultRegistry().load(client.Key())
	require.True(t, found)
	assert.Equal(t, "user-service", stored.Service)
}

func TestClient_Key(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{})

	assert.Equal(t, Key("test"), client.Key())
}

func TestConfigure_LayersOverStored(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{Service: "user-service"})

	client.Configure(WithEnv("staging"))

	stored, found := client.registry.load(client.key)
	require.True(t, found)
	assert.Equal(t, "user-service", stored.Service)
	assert.Equal(t, "staging", stored.Env)
}

func TestConfigure_DisableThenReenable(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, Config{Service: "user-service"})

	client.Configure(WithDisabled(true))
	_, _, err := client.StartTrace(context.Background(), "request")
	assert.ErrorIs(t, err, ErrTracerDisabled)

	client.Configure(WithDisabled(false))
	ctx, trace, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	assert.NotNil(t, trace)

	span := client.CurrentSpan(ctx)
	require.NotNil(t, span)
	assert.Equal(t, "user-service", span.Service, "re-enabling restores the full stored record")
}

func TestConfigure_SwapsSender(t *testing.T) {
	t.Parallel()
	first := newMockSender()
	second := newMockSender()
	client := newTestClient(t, Config{Sender: first})

	client.Configure(WithSender(second))

	ctx, _, err := client.StartTrace(context.Background(), "request")
	require.NoError(t, err)
	_, _, err = client.FinishTrace(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, first.TotalCalls())
	assert.Equal(t, 1, second.TotalCalls())
}

func TestRegistry_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()

	api, err := registry.NewClient("api", Config{Service: "api-service"})
	require.NoError(t, err)
	worker, err := registry.NewClient("worker", Config{Service: "worker-service"})
	require.NoError(t, err)

	api.Configure(WithDisabled(true))

	_, _, err = api.StartTrace(context.Background(), "request")
	assert.ErrorIs(t, err, ErrTracerDisabled)

	ctx, _, err := worker.StartTrace(context.Background(), "job")
	require.NoError(t, err)
	span := worker.CurrentSpan(ctx)
	require.NotNil(t, span)
	assert.Equal(t, "worker-service", span.Service)
}
