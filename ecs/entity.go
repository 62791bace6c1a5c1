package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// Entity is an opaque identifier for a game object. It carries no data and is
// only used as a key into component storages.
type Entity uint32

// EntityManager issues entity ids and recycles destroyed ones.
type EntityManager struct {
	nextId  Entity
	freeIds []Entity
	free    *intmap.Set[Entity]
}

// NewEntityManager creates an empty entity manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		free: intmap.NewSet[Entity](64),
	}
}

// Create returns a recycled id if one is available, otherwise a fresh one.
// The most recently destroyed id is handed out first.
func (m *EntityManager) Create() Entity {
	if n := len(m.freeIds); n > 0 {
		id := m.freeIds[n-1]
		m.freeIds = m.freeIds[:n-1]
		m.free.Del(id)
		return id
	}

	id := m.nextId
	m.nextId++
	return id
}

// Destroy marks the entity id as reusable. Components attached to the entity
// are not touched. Destroying an id that is already free, or that was never
// issued, does nothing.
func (m *EntityManager) Destroy(e Entity) {
	if e >= m.nextId || m.free.Has(e) {
		return
	}
	m.freeIds = append(m.freeIds, e)
	m.free.Add(e)
}

// IsActive reports whether the id has been issued and not destroyed since.
func (m *EntityManager) IsActive(e Entity) bool {
	return e < m.nextId && !m.free.Has(e)
}

// ActiveEntities yields every live id in ascending order. The sequence is
// recomputed on each iteration; destroying entities while iterating is not
// supported.
func (m *EntityManager) ActiveEntities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for id := Entity(0); id < m.nextId; id++ {
			if m.free.Has(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int {
	return int(m.nextId) - len(m.freeIds)
}

// Cap returns the number of ids ever issued, live or free.
func (m *EntityManager) Cap() int {
	return int(m.nextId)
}

// FreeCount returns the number of ids waiting to be reused.
func (m *EntityManager) FreeCount() int {
	return len(m.freeIds)
}
