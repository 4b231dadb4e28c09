package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new backend instance. A factory may return nil when the
// backend is compiled in as a stub.
type Factory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Rust > Native > Headless (headless never touches a GPU).
	backendPriority = []string{BackendRust, BackendNative, BackendHeadless}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends whose factory
// returns a usable backend.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name, factory := range backends {
		if factory != nil && factory() != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered or is a stub.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok || factory == nil {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Priority order: rust > native > headless.
// Returns nil if no backends are registered.
func Default() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok && factory != nil {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	// Fallback: first available in name order, for backends outside the
	// priority list.
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if factory := backends[name]; factory != nil {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	return nil
}

// Lookup returns the named backend, or Default() when name is empty.
func Lookup(name string) (Backend, error) {
	if name == "" {
		if b := Default(); b != nil {
			return b, nil
		}
		return nil, ErrBackendNotAvailable
	}
	if b := Get(name); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrBackendNotAvailable, name, Available())
}

// MustDefault returns the default backend or panics.
func MustDefault() Backend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}
