package ecs

import (
	"iter"
	"reflect"

	"github.com/rs/zerolog"
)

// World owns entity identity and every component storage. A World is meant to
// be driven by a single goroutine.
type World struct {
	entities   *EntityManager
	components *ComponentStore
	commands   *Commands
	logger     zerolog.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithWorldLogger sets the logger used for storage lifecycle events.
func WithWorldLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:   NewEntityManager(),
		components: newComponentStore(),
		commands:   newCommands(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.components.onCreate = func(t reflect.Type) {
		w.logger.Debug().Str("component", t.String()).Msg("created component storage")
	}
	return w
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	return w.entities.Create()
}

// DestroyEntity releases the entity id for reuse. Component values attached to
// the entity are left in place and become visible again if the id is reused
// before they are overwritten. Use Despawn to clear them as well.
func (w *World) DestroyEntity(e Entity) {
	w.entities.Destroy(e)
}

// Despawn clears the entity from every component storage and then releases
// its id.
func (w *World) Despawn(e Entity) {
	for _, col := range w.components.columnsSorted() {
		col.Remove(e)
	}
	w.entities.Destroy(e)
}

// ActiveEntities yields every live entity in ascending id order.
func (w *World) ActiveEntities() iter.Seq[Entity] {
	return w.entities.ActiveEntities()
}

// Entities returns the world's entity manager.
func (w *World) Entities() *EntityManager {
	return w.entities
}

// Commands returns the buffer of deferred edits for this world.
func (w *World) Commands() *Commands {
	return w.commands
}

// RegisteredTypes returns every component type that has a storage in this
// world, sorted by name.
func (w *World) RegisteredTypes() []reflect.Type {
	return w.components.Types()
}

// ComponentTypes returns the component types the entity currently holds,
// sorted by name.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	var types []reflect.Type
	for _, col := range w.components.columnsSorted() {
		if col.Has(e) {
			types = append(types, col.Type())
		}
	}
	return types
}

// Component returns a pointer to the entity's component of the given type as
// an any, or nil. It is meant for tooling that does not know component types
// at compile time.
func (w *World) Component(e Entity, compType reflect.Type) any {
	col := w.components.column(compType)
	if col == nil {
		return nil
	}
	return col.GetAny(e)
}

// AddComponent creates a new entity and attaches value to it.
func AddComponent[T any](w *World, value T) {
	e := w.Spawn()
	AddEntityComponent(w, e, value)
}

// AddEntityComponent attaches value to an existing entity, replacing any
// previous value of the same type.
func AddEntityComponent[T any](w *World, e Entity, value T) {
	getOrCreateColumn[T](w.components).insert(e, value)
}

// RemoveComponent clears the entity's value of type T, if any.
func RemoveComponent[T any](w *World, e Entity) {
	if c := lookupColumn[T](w.components); c != nil {
		c.Remove(e)
	}
}

// GetComponent returns a copy of the entity's value of type T.
func GetComponent[T any](w *World, e Entity) (T, bool) {
	var zero T
	c := lookupColumn[T](w.components)
	if c == nil {
		return zero, false
	}

	c.borrow(false)
	defer c.release(false)
	if v := c.get(e); v != nil {
		return *v, true
	}
	return zero, false
}

// HasComponent reports whether the entity holds a value of type T.
func HasComponent[T any](w *World, e Entity) bool {
	c := lookupColumn[T](w.components)
	return c != nil && c.Has(e)
}
