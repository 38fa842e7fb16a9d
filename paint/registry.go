package paint

import (
	"fmt"
	"sort"
	"sync"
)

// CanvasFactory creates a canvas of the given pixel size.
// Factories are registered via Register() and called by NewCanvas().
type CanvasFactory func(width, height int) Canvas

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]CanvasFactory)
)

// Register registers a canvas backend with the given name.
// This function is typically called from init() in backend packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    paint.Register("raster", func(w, h int) paint.Canvas {
//	        return New(w, h)
//	    })
//	}
//
// Register panics if factory is nil or the name is already registered.
func Register(name string, factory CanvasFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("paint: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("paint: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewCanvas creates a canvas by backend name.
// Returns an error if the backend is not registered.
func NewCanvas(name string, width, height int) (Canvas, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("paint: unknown canvas backend %q (forgotten import?)", name)
	}
	return factory(width, height), nil
}

// Backends returns a sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
