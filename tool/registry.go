package tool

import (
	"fmt"
	"sort"
	"sync"
)

// BuilderFactory creates a builder instance.
type BuilderFactory func() Builder

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	builders   = make(map[string]BuilderFactory)
)

func init() {
	Register("polyline", func() Builder { return Polyline{} })
	Register("rectangle", func() Builder { return Rectangle{} })
}

// Register makes a tool available by name, following the database/sql
// driver pattern. Host applications add their own shapes from init():
//
//	func init() {
//	    tool.Register("arc", func() tool.Builder { return ArcBuilder{} })
//	}
//
// Register panics if factory is nil or the name is already registered.
func Register(name string, factory BuilderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("tool: Register factory is nil")
	}
	if _, dup := builders[name]; dup {
		panic("tool: Register called twice for " + name)
	}
	builders[name] = factory
}

// Unregister removes a tool from the registry. It is a no-op for unknown
// names and is mainly useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(builders, name)
}

// Lookup creates a builder by registered name.
func Lookup(name string) (Builder, error) {
	registryMu.RLock()
	factory, ok := builders[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("tool: unknown tool %q", name)
	}
	return factory(), nil
}

// Names returns the registered tool names in alphabetical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
