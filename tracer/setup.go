package tracer

import (
	"fmt"
)

// TracerClient is one named tracer instance. It carries only its identity
// and the registry holding its configuration; all per-request state lives in
// the Strategy, so a single client is safe to share across goroutines.
//
// TracerClient implements the Tracer interface.
type TracerClient struct {
	key      Key
	registry *Registry
}

// NewClient creates a tracer client for the given identity and persists cfg
// as its initial configuration record in the process-wide registry.
//
// Parameters:
//   - key: The identity of this tracer definition. Must not be empty. Each
//     identity owns one configuration slot and one current-trace binding;
//     distinct identities never share state.
//   - cfg: The initial configuration. A nil Strategy defaults to the
//     context-chain strategy; a nil Services map defaults to empty. The
//     record is persisted in full even when cfg.Disabled is true, so the
//     tracer can be enabled later with Configure.
//
// Returns:
//   - *TracerClient: A configured client ready for lifecycle operations
//   - error: ErrInvalidConfiguration when the key is empty
//
// Example:
//
//	client, err := tracer.NewClient("api", tracer.Config{
//	    Service: "user-service",
//	    Env:     "production",
//	    Sender:  mySender,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, trace, err := client.StartTrace(ctx, "request")
func NewClient(key Key, cfg Config) (*TracerClient, error) {
	return defaultRegistry.NewClient(key, cfg)
}

// NewClient creates a tracer client whose configuration lives in this
// registry instead of the process-wide one. Behavior is otherwise identical
// to the package-level NewClient.
func (r *Registry) NewClient(key Key, cfg Config) (*TracerClient, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: trace key must not be empty", ErrInvalidConfiguration)
	}

	cfg.TraceKey = key
	if cfg.Strategy == nil {
		cfg.Strategy = NewContextStrategy()
	}
	if cfg.Services == nil {
		cfg.Services = map[string]string{}
	}
	r.store(key, cfg)

	return &TracerClient{key: key, registry: r}, nil
}

// Key reports the identity of this tracer instance.
func (c *TracerClient) Key() Key {
	return c.key
}

// Configure layers opts over the stored configuration record and persists
// the merged result. The full record is always persisted - disabling the
// tracer keeps every other setting intact, and per-call resolution is what
// collapses a disabled record to ErrTracerDisabled.
func (c *TracerClient) Configure(opts ...Option) {
	stored, found := c.registry.load(c.key)
	merged := mergeConfig(stored, found, c.key, opts)
	c.registry.store(c.key, merged)
}
