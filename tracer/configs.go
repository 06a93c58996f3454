package tracer

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/aalemi-dev/tracelab/observability"
)

// Config is the configuration record for one tracer definition. A full
// record is persisted per Key by Configure/NewClient; every operation then
// resolves an effective copy of it, layered with the call-site options.
// Stored records are never mutated in place.
type Config struct {
	// Adapter selects the backend-specific span defaults and the wire header
	// format used by DistributedContext and InjectContext. A nil Adapter
	// means no span-field defaults and no propagation across boundaries.
	Adapter Adapter `yaml:"-"`

	// Service is the default service name attached to spans.
	//
	// Example values: "user-service", "payment-processor", "notification-worker"
	Service string `yaml:"service" envconfig:"SERVICE"`

	// Disabled short-circuits every operation to an ErrTracerDisabled result
	// (or a "none" answer for the pure queries) with zero collaborator
	// calls. The record itself stays persisted, so a later Configure call
	// can re-enable the tracer.
	Disabled bool `yaml:"disabled" envconfig:"DISABLED"`

	// Env is the deployment environment label attached to traces.
	// Common values include "development", "staging", "production".
	Env string `yaml:"env" envconfig:"ENV"`

	// Services maps service names to their default span type, so spans
	// attributed to a known service pick up its type without per-call
	// options.
	//
	// Example: {"user-service": "web", "user-db": "db"}
	Services map[string]string `yaml:"services"`

	// Strategy selects the storage for the current trace/span per execution
	// context. When nil, the context-chain strategy is used.
	Strategy Strategy `yaml:"-"`

	// Sender selects the component that ships finished traces. When nil,
	// finished traces are dropped.
	Sender Sender `yaml:"-"`

	// TraceKey is the owning tracer's identity. It is forced to that
	// identity during resolution; values supplied by callers are ignored.
	TraceKey Key `yaml:"-"`

	// Resource, Type, Tags, Error, StartTime, and FinishTime are span-level
	// options: when present in a resolved configuration they are merged into
	// the span the operation creates or updates.

	// Resource narrows the span's operation to a concrete target.
	Resource string `yaml:"-"`

	// Type is the span category, such as "web" or "db".
	Type string `yaml:"-"`

	// Tags holds metadata merged into the span's tags.
	Tags map[string]interface{} `yaml:"-"`

	// Error, when set, is recorded on the span as an error annotation.
	Error error `yaml:"-"`

	// ErrorStack optionally carries a pre-captured stack trace for the
	// error annotation; SpanError captures one itself when this is empty.
	ErrorStack string `yaml:"-"`

	// StartTime overrides the span start time on start operations.
	StartTime time.Time `yaml:"-"`

	// FinishTime overrides the completion time on finish operations.
	FinishTime time.Time `yaml:"-"`

	// Observer, when set, receives an OperationContext for every enabled
	// operation this tracer performs. Useful for health metrics on the
	// instrumentation itself.
	Observer observability.Observer `yaml:"-"`

	// Logger, when set, receives debug-level lifecycle logs and error logs
	// for sender failures.
	Logger *zap.Logger `yaml:"-"`
}

// Option adjusts one resolved configuration. Options apply in order, later
// ones winning, on top of the stored record.
type Option func(*Config)

// WithAdapter selects the backend adapter for this call or configuration.
func WithAdapter(adapter Adapter) Option {
	return func(c *Config) { c.Adapter = adapter }
}

// WithService sets the default service name attached to spans.
func WithService(service string) Option {
	return func(c *Config) { c.Service = service }
}

// WithDisabled turns the tracer off (true) or back on (false).
func WithDisabled(disabled bool) Option {
	return func(c *Config) { c.Disabled = disabled }
}

// WithEnv sets the environment label attached to traces.
func WithEnv(env string) Option {
	return func(c *Config) { c.Env = env }
}

// WithServices replaces the service name to default span type mapping.
func WithServices(services map[string]string) Option {
	return func(c *Config) { c.Services = services }
}

// WithStrategy selects the current-trace storage backend.
func WithStrategy(strategy Strategy) Option {
	return func(c *Config) { c.Strategy = strategy }
}

// WithSender selects the component that ships finished traces.
func WithSender(sender Sender) Option {
	return func(c *Config) { c.Sender = sender }
}

// WithResource sets the span resource, such as "GET /users/:id".
func WithResource(resource string) Option {
	return func(c *Config) { c.Resource = resource }
}

// WithType sets the span type, such as "web" or "db".
func WithType(spanType string) Option {
	return func(c *Config) { c.Type = spanType }
}

// WithTag attaches one metadata entry to the span. The underlying map is
// copied before the write, so options never mutate stored configuration.
func WithTag(key string, value interface{}) Option {
	return func(c *Config) {
		tags := make(map[string]interface{}, len(c.Tags)+1)
		for k, v := range c.Tags {
			tags[k] = v
		}
		tags[key] = value
		c.Tags = tags
	}
}

// WithTags merges several metadata entries into the span tags.
func WithTags(tags map[string]interface{}) Option {
	return func(c *Config) {
		merged := make(map[string]interface{}, len(c.Tags)+len(tags))
		for k, v := range c.Tags {
			merged[k] = v
		}
		for k, v := range tags {
			merged[k] = v
		}
		c.Tags = merged
	}
}

// WithError records an error annotation on the span being created or
// updated.
func WithError(err error) Option {
	return func(c *Config) { c.Error = err }
}

// WithErrorStack supplies a pre-captured stack trace for the error
// annotation. Scope blocks use this to attach the stack from the panic site.
func WithErrorStack(stack string) Option {
	return func(c *Config) { c.ErrorStack = stack }
}

// WithStartTime overrides the span start time on start operations.
func WithStartTime(start time.Time) Option {
	return func(c *Config) { c.StartTime = start }
}

// WithFinishTime overrides the completion time on finish operations.
func WithFinishTime(finish time.Time) Option {
	return func(c *Config) { c.FinishTime = finish }
}

// WithObserver sets the observer notified about this tracer's operations.
func WithObserver(observer observability.Observer) Option {
	return func(c *Config) { c.Observer = observer }
}

// WithLogger sets the logger used for lifecycle debug logs and sender
// failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// defaultConfig is the bottom layer of every resolution: tracing enabled, no
// known services, context-chain storage.
func defaultConfig() Config {
	return Config{
		Services: map[string]string{},
		Strategy: NewContextStrategy(),
	}
}

// mergeConfig computes the effective configuration for one call. Layering,
// later wins: static defaults, then the stored record when one exists, then
// the call-site options in order, then the trace key forced to the owning
// identity. Pure function; neither the stored record nor the options are
// mutated.
func mergeConfig(stored Config, found bool, key Key, opts []Option) Config {
	out := defaultConfig()
	if found {
		out = stored
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	out.TraceKey = key
	if out.Strategy == nil {
		out.Strategy = NewContextStrategy()
	}
	if out.Services == nil {
		out.Services = map[string]string{}
	}
	return out
}

// resolve is the per-call resolution used by start- and query-style
// operations: the merged configuration, collapsed to ErrTracerDisabled when
// it is disabled. The disabled check happens here, before the caller touches
// any collaborator.
func (c *TracerClient) resolve(opts []Option) (Config, error) {
	stored, found := c.registry.load(c.key)
	cfg := mergeConfig(stored, found, c.key, opts)
	if cfg.Disabled {
		return Config{}, ErrTracerDisabled
	}
	return cfg, nil
}

// resolveUpdate is the resolution used by finish-style operations. It starts
// from the call-site options alone, then forces the trace key to the owning
// identity and the Strategy, Adapter, and Sender to the stored values,
// ignoring any of those three supplied by the caller. This guarantees a
// trace is closed against the same collaborators it was opened with, no
// matter what the closing call passes.
func (c *TracerClient) resolveUpdate(opts []Option) (Config, error) {
	stored, found := c.registry.load(c.key)
	if !found {
		stored = defaultConfig()
	}
	if stored.Disabled {
		return Config{}, ErrTracerDisabled
	}

	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.TraceKey = c.key
	cfg.Strategy = stored.Strategy
	cfg.Adapter = stored.Adapter
	cfg.Sender = stored.Sender
	if cfg.Strategy == nil {
		cfg.Strategy = NewContextStrategy()
	}
	// Ambient concerns follow the stored record unless the call overrides
	// them; they are not part of the forced collaborator set.
	if cfg.Observer == nil {
		cfg.Observer = stored.Observer
	}
	if cfg.Logger == nil {
		cfg.Logger = stored.Logger
	}
	return cfg, nil
}

// envSettings is the environment-variable surface of a configuration.
type envSettings struct {
	Service  string `envconfig:"SERVICE"`
	Env      string `envconfig:"ENV"`
	Disabled bool   `envconfig:"DISABLED"`
}

// ConfigFromEnv builds a Config from environment variables under the given
// prefix ("TRACER" when empty): <PREFIX>_SERVICE, <PREFIX>_ENV,
// <PREFIX>_DISABLED. Collaborators cannot come from the environment; set
// them on the returned value before constructing the client.
//
// Example:
//
//	cfg, err := tracer.ConfigFromEnv("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Sender = mySender
//	client, err := tracer.NewClient("api", cfg)
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = "TRACER"
	}
	var settings envSettings
	if err := envconfig.Process(prefix, &settings); err != nil {
		return Config{}, fmt.Errorf("tracer: reading environment configuration: %w", err)
	}
	return Config{
		Service:  settings.Service,
		Env:      settings.Env,
		Disabled: settings.Disabled,
	}, nil
}
