package ecs

import (
	"reflect"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Resources holds exactly one instance of each resource type. Resources are
// global state that does not belong to any entity, such as the frame time,
// the input snapshot or a render handle.
type Resources struct {
	mu      sync.RWMutex
	items   map[reflect.Type]any
	version uint64
	logger  zerolog.Logger
}

// ResourcesOption configures a Resources registry.
type ResourcesOption func(*Resources)

// WithResourcesLogger sets the logger used to report ignored additions.
func WithResourcesLogger(logger zerolog.Logger) ResourcesOption {
	return func(r *Resources) {
		r.logger = logger
	}
}

// NewResources creates an empty registry.
func NewResources(opts ...ResourcesOption) *Resources {
	r := &Resources{
		items:  make(map[reflect.Type]any),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddResource registers value as the instance of T. If an instance of T is
// already present the call is ignored and the first value is kept. It
// reports whether value was stored.
func AddResource[T any](r *Resources, value T) bool {
	t := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t]; ok {
		r.logger.Debug().Str("resource", t.String()).Msg("resource already present, keeping first value")
		return false
	}

	ptr := new(T)
	*ptr = value
	r.items[t] = ptr
	r.version++
	return true
}

// GetResource returns the instance of T. It panics if T was never added:
// resources are expected to be registered before any system runs.
func GetResource[T any](r *Resources) *T {
	res, err := LookupResource[T](r)
	if err != nil {
		panic(err)
	}
	return res
}

// LookupResource returns the instance of T, or an error wrapping
// ErrResourceNotFound.
func LookupResource[T any](r *Resources) (*T, error) {
	t := reflect.TypeFor[T]()

	r.mu.RLock()
	item, ok := r.items[t]
	r.mu.RUnlock()
	if !ok {
		return nil, eris.Wrapf(ErrResourceNotFound, "resource %s", t)
	}
	return item.(*T), nil
}

// HasResource reports whether an instance of T is registered.
func HasResource[T any](r *Resources) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[reflect.TypeFor[T]()]
	return ok
}

// RemoveResource drops the instance of T, allowing a later AddResource to
// register a new one.
func RemoveResource[T any](r *Resources) {
	t := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t]; ok {
		delete(r.items, t)
		r.version++
	}
}

// Len returns the number of registered resources.
func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Types returns the registered resource types sorted by name.
func (r *Resources) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.items))
	for t := range r.items {
		types = append(types, t)
	}
	r.mu.RUnlock()

	sort.Sort(byTypeName(types))
	return types
}

// get returns the stored *T for t as an any, or nil, along with the registry
// version it was read at.
func (r *Resources) get(t reflect.Type) (any, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[t], r.version
}

// currentVersion changes every time a resource is added or removed.
func (r *Resources) currentVersion() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
