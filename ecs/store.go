package ecs

import (
	"reflect"
	"sort"
	"sync"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// ComponentStore maps each component type to its storage. Storages are created
// on first insert; looking up a type that was never inserted yields nothing.
type ComponentStore struct {
	mu      sync.RWMutex
	columns map[reflect.Type]iComponentStorage

	// onCreate is called with the type of every newly created storage.
	onCreate func(reflect.Type)
}

func newComponentStore() *ComponentStore {
	return &ComponentStore{
		columns: make(map[reflect.Type]iComponentStorage),
	}
}

// lookupColumn returns the storage for T, or nil if none exists.
func lookupColumn[T any](s *ComponentStore) *column[T] {
	s.mu.RLock()
	c, ok := s.columns[reflect.TypeFor[T]()]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.(*column[T])
}

// getOrCreateColumn returns the storage for T, creating it if needed.
func getOrCreateColumn[T any](s *ComponentStore) *column[T] {
	if c := lookupColumn[T](s); c != nil {
		return c
	}

	t := reflect.TypeFor[T]()
	s.mu.Lock()
	if c, ok := s.columns[t]; ok {
		s.mu.Unlock()
		return c.(*column[T])
	}
	c := newColumn[T]()
	s.columns[t] = c
	s.mu.Unlock()

	if s.onCreate != nil {
		s.onCreate(t)
	}
	return c
}

// column returns the type-erased storage for t, or nil.
func (s *ComponentStore) column(t reflect.Type) iComponentStorage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns[t]
}

// Types returns every registered component type sorted by name.
func (s *ComponentStore) Types() []reflect.Type {
	s.mu.RLock()
	types := make([]reflect.Type, 0, len(s.columns))
	for t := range s.columns {
		types = append(types, t)
	}
	s.mu.RUnlock()

	sort.Sort(byTypeName(types))
	return types
}

// Len returns the number of registered component types.
func (s *ComponentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.columns)
}

// columnsSorted returns the registered storages in type name order.
func (s *ComponentStore) columnsSorted() []iComponentStorage {
	types := s.Types()
	cols := make([]iComponentStorage, 0, len(types))
	s.mu.RLock()
	for _, t := range types {
		cols = append(cols, s.columns[t])
	}
	s.mu.RUnlock()
	return cols
}
