// Package extension is a type-keyed side table for state that window manager
// extensions attach once at startup and look up on every action or hook.
package extension

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotRegistered is returned by Get when no value of the requested type
// was ever added.
var ErrNotRegistered = errors.New("extension not registered")

// Store maps a Go type to the single shared value of that type. The zero
// value is ready to use.
type Store struct {
	m map[reflect.Type]any
}

// Add stores v as the value for type T, replacing any previous one.
func Add[T any](s *Store, v *T) {
	if s.m == nil {
		s.m = make(map[reflect.Type]any)
	}
	s.m[reflect.TypeFor[T]()] = v
}

// Get returns the value stored for type T. Callers share the pointer, so
// mutations are visible to every later Get.
func Get[T any](s *Store) (*T, error) {
	t := reflect.TypeFor[T]()
	v, ok := s.m[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}
	return v.(*T), nil
}

// Has reports whether a value of type T was added.
func Has[T any](s *Store) bool {
	_, ok := s.m[reflect.TypeFor[T]()]
	return ok
}
