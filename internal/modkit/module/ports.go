package module

import (
	"fmt"
	"reflect"
)

// PortSet is whatever a module's Ports() returns: a single port, or a struct
// bundling several (holidays returns Ports{Catalog})
type PortSet = any

// portIn finds a T in p: p itself, else the first exported field of p (a
// struct or pointer to one) that implements T. Nil fields never match.
func portIn[T any](p PortSet) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() || (f.Kind() == reflect.Interface && f.IsNil()) {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// PortsOf pulls a T out of m's ports without going through the registry
func PortsOf[T any](m Module) (T, bool) { return portIn[T](m.Ports()) }

// MustPortsOf panics naming the module and the missing port type
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic(fmt.Sprintf("module: %s exposes no %s port", m.Name(), reflect.TypeFor[T]()))
}
