package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ResourceRef gives a system cached access to one resource. Declare it as a
// field of a system struct and the Scheduler binds it on registration:
//
//	type CameraSystem struct {
//		Input ecs.ResourceRef[Input]
//	}
type ResourceRef[T any] struct {
	resources *Resources
	ptr       *T
	version   uint64
}

// NewResourceRef creates a ResourceRef bound to the registry. If an
// initializer is given and T is not registered yet, it is added first.
func NewResourceRef[T any](resources *Resources, initializer ...T) *ResourceRef[T] {
	if len(initializer) > 0 {
		AddResource(resources, initializer[0])
	}

	ref := &ResourceRef[T]{}
	ref.Init(resources)
	return ref
}

// Init binds the reference to a registry. This is called automatically by the
// Scheduler during system registration.
func (r *ResourceRef[T]) Init(resources *Resources) {
	r.resources = resources
	r.ptr = nil
	r.updateCache()
}

// Get returns the resource. It panics if the resource is not registered.
func (r *ResourceRef[T]) Get() *T {
	r.refresh()
	if r.ptr == nil {
		panic(eris.Wrapf(ErrResourceNotFound, "resource %s", reflect.TypeFor[T]()))
	}
	return r.ptr
}

// Exists reports whether the resource is registered.
func (r *ResourceRef[T]) Exists() bool {
	r.refresh()
	return r.ptr != nil
}

// refresh looks the resource up again when nothing is cached or the registry
// changed since the last lookup.
func (r *ResourceRef[T]) refresh() {
	if r.ptr == nil || (r.resources != nil && r.resources.currentVersion() != r.version) {
		r.updateCache()
	}
}

// updateCache refreshes the cached pointer from the registry.
func (r *ResourceRef[T]) updateCache() {
	if r.resources == nil {
		return
	}
	item, version := r.resources.get(reflect.TypeFor[T]())
	r.version = version
	if item != nil {
		r.ptr = item.(*T)
	} else {
		r.ptr = nil
	}
}
