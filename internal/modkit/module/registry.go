package module

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// the registry holds the modules api.Mount has built, so a module can reach
// the ports of one registered before it by name
var (
	mu    sync.RWMutex
	reg   = map[string]Module{}
	order []string
)

// Register adds m under m.Name(). Registering a name again replaces the module
// and keeps its original position.
func Register(m Module) {
	mu.Lock()
	defer mu.Unlock()
	name := m.Name()
	if _, seen := reg[name]; !seen {
		order = append(order, name)
	}
	reg[name] = m
}

// Registered lists module names in registration order
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(order)
}

// PortsAs finds a T among the ports of the module registered as name
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	m, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}

// MustPortsAs is PortsAs for bootstrap wiring: a missing module or port panics
func MustPortsAs[T any](name string) T {
	if v, ok := PortsAs[T](name); ok {
		return v
	}
	panic(fmt.Sprintf("module: no %s port registered under %q", reflect.TypeFor[T](), name))
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]Module{}
	order = nil
	mu.Unlock()
}
