package ecs

import "iter"

const (
	storageBlockSize = 64
)

// ComponentStorage holds at most one value of type T per entity, indexed
// directly by entity id. Storage is allocated in fixed-size blocks so that
// pointers handed out by Get stay valid while the storage grows.
type ComponentStorage[T any] struct {
	blocks []*[storageBlockSize]T
	filled []*[storageBlockSize]bool
	length int
	count  int
}

// NewComponentStorage creates an empty storage.
func NewComponentStorage[T any]() *ComponentStorage[T] {
	return &ComponentStorage[T]{}
}

// Insert sets the value for the entity, growing the storage with empty slots
// as needed. Any previous value for the entity is overwritten.
func (cs *ComponentStorage[T]) Insert(e Entity, value T) {
	index := int(e)
	blockIdx := index / storageBlockSize
	slotIdx := index % storageBlockSize

	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([storageBlockSize]T))
		cs.filled = append(cs.filled, new([storageBlockSize]bool))
	}
	if index >= cs.length {
		cs.length = index + 1
	}

	if !cs.filled[blockIdx][slotIdx] {
		cs.filled[blockIdx][slotIdx] = true
		cs.count++
	}
	cs.blocks[blockIdx][slotIdx] = value
}

// Get returns a pointer to the entity's value, or nil if the slot is empty or
// out of range.
func (cs *ComponentStorage[T]) Get(e Entity) *T {
	index := int(e)
	if index >= cs.length {
		return nil
	}

	blockIdx := index / storageBlockSize
	slotIdx := index % storageBlockSize
	if !cs.filled[blockIdx][slotIdx] {
		return nil
	}
	return &cs.blocks[blockIdx][slotIdx]
}

// Has reports whether the entity has a value in this storage.
func (cs *ComponentStorage[T]) Has(e Entity) bool {
	index := int(e)
	if index >= cs.length {
		return false
	}
	return cs.filled[index/storageBlockSize][index%storageBlockSize]
}

// Remove clears the entity's slot. Out of range entities are ignored.
func (cs *ComponentStorage[T]) Remove(e Entity) {
	index := int(e)
	if index >= cs.length {
		return
	}

	blockIdx := index / storageBlockSize
	slotIdx := index % storageBlockSize
	if cs.filled[blockIdx][slotIdx] {
		cs.filled[blockIdx][slotIdx] = false
		var zero T
		cs.blocks[blockIdx][slotIdx] = zero
		cs.count--
	}
}

// Len returns the number of slots, present or empty. It never shrinks.
func (cs *ComponentStorage[T]) Len() int {
	return cs.length
}

// Count returns the number of present values.
func (cs *ComponentStorage[T]) Count() int {
	return cs.count
}

// Iter yields every present value in ascending entity order.
func (cs *ComponentStorage[T]) Iter() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := 0; i < cs.length; i++ {
			blockIdx := i / storageBlockSize
			slotIdx := i % storageBlockSize

			if !cs.filled[blockIdx][slotIdx] {
				continue
			}
			if !yield(Entity(i), &cs.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}
