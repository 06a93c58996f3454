package tracer

import "sync"

// Registry is the process-wide configuration store: one full Config record
// per tracer Key. Records are written only by Configure (and the initial
// write done by NewClient); every lifecycle call reads a copy and never
// mutates the stored value.
//
// A Registry is safe for concurrent use. Most programs use the package-level
// default registry through NewClient; construct a private Registry when
// tests or embedded components need isolation from process-wide state.
type Registry struct {
	mu      sync.RWMutex
	configs map[Key]Config
}

// NewRegistry creates an empty configuration registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[Key]Config)}
}

// store persists the full record for key, replacing any previous one.
func (r *Registry) store(key Key, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[key] = cfg
}

// load returns the stored record for key and whether one exists.
func (r *Registry) load(key Key) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[key]
	return cfg, ok
}

// defaultRegistry backs clients built with the package-level NewClient.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by NewClient.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
