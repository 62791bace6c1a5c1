package ecs

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

// iComponentStorage is a type-erased view of a column. It covers the
// operations the World needs without knowing the component type.
type iComponentStorage interface {
	Type() reflect.Type
	Remove(e Entity)
	Has(e Entity) bool
	GetAny(e Entity) any
	Len() int
	Count() int

	borrow(exclusive bool)
	release(exclusive bool)
}

// column pairs a ComponentStorage with the guard that tracks borrows of it.
type column[T any] struct {
	mu      sync.RWMutex
	typ     reflect.Type
	storage *ComponentStorage[T]
}

func newColumn[T any]() *column[T] {
	return &column[T]{
		typ:     reflect.TypeFor[T](),
		storage: NewComponentStorage[T](),
	}
}

func (c *column[T]) Type() reflect.Type { return c.typ }
func (c *column[T]) Len() int           { return c.storage.Len() }
func (c *column[T]) Count() int         { return c.storage.Count() }

func (c *column[T]) Remove(e Entity) {
	c.borrow(true)
	defer c.release(true)
	c.storage.Remove(e)
}

func (c *column[T]) Has(e Entity) bool {
	c.borrow(false)
	defer c.release(false)
	return c.storage.Has(e)
}

// GetAny returns a *T for the entity, or nil. No borrow is held after it
// returns.
func (c *column[T]) GetAny(e Entity) any {
	c.borrow(false)
	defer c.release(false)
	if v := c.storage.Get(e); v != nil {
		return v
	}
	return nil
}

func (c *column[T]) insert(e Entity, value T) {
	c.borrow(true)
	defer c.release(true)
	c.storage.Insert(e, value)
}

// get returns the entity's value. Callers must hold a borrow. A nil column
// behaves as an empty one.
func (c *column[T]) get(e Entity) *T {
	if c == nil {
		return nil
	}
	return c.storage.Get(e)
}

// borrow acquires the guard without blocking. Access is single-threaded, so
// a guard that is already taken means the caller is still inside another
// borrow of the same type.
func (c *column[T]) borrow(exclusive bool) {
	var ok bool
	if exclusive {
		ok = c.mu.TryLock()
	} else {
		ok = c.mu.TryRLock()
	}
	if !ok {
		panic(eris.Wrapf(ErrOverlappingBorrow, "component %s", c.typ))
	}
}

func (c *column[T]) release(exclusive bool) {
	if exclusive {
		c.mu.Unlock()
	} else {
		c.mu.RUnlock()
	}
}

// erase converts a possibly nil column into the interface, keeping nil as a
// nil interface.
func erase[T any](c *column[T]) iComponentStorage {
	if c == nil {
		return nil
	}
	return c
}
