package veneer

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a configured component instance. Factories run per
// render; each call must return a fresh instance so no state is shared
// across concurrent renders.
type Factory func(cfg Config) (*Component, error)

// Registry maps component names to factories and carries the shared
// configuration (namespace, hook, escaper, logger, encoder key) every
// built component is threaded with. Registration happens once at process
// start; Build is read-only thereafter.
type Registry struct {
	mu        sync.RWMutex
	cfg       Config
	factories map[string]Factory
}

// NewRegistry creates a component registry with the given configuration.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:       cfg.norm(),
		factories: make(map[string]Factory),
	}
}

// Config returns the registry's normalized configuration.
func (r *Registry) Config() Config {
	return r.cfg
}

// Register adds a component factory under name.
// Panics on a name collision: duplicate registration is a programming
// error caught at startup, not during requests.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("veneer: component name collision for %q", name))
	}
	r.factories[name] = factory
}

// Build constructs a fresh instance of the named component with the
// registry's configuration. Unknown names fail with ErrNotFound.
func (r *Registry) Build(name string) (*Component, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: component %q", ErrNotFound, name)
	}
	return factory(r.cfg)
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
