package ecs

// Commands buffers structural edits to a World so they can be applied after
// all Loop systems of a frame have run. This keeps entity iteration stable
// while systems decide what to destroy or attach.
type Commands struct {
	destroys []destroyCommand
	edits    []editCommand
	defers   []func(*World)
}

func newCommands() *Commands {
	return &Commands{}
}

type destroyCommand struct {
	entity Entity
	sweep  bool
}

type editCommand struct {
	entity Entity
	apply  func(*World)
}

// Destroy queues World.DestroyEntity for the entity.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, destroyCommand{entity: e})
}

// Despawn queues World.Despawn for the entity.
func (c *Commands) Despawn(e Entity) {
	c.destroys = append(c.destroys, destroyCommand{entity: e, sweep: true})
}

// Defer queues a function to run against the world after all other commands.
func (c *Commands) Defer(fn func(*World)) {
	c.defers = append(c.defers, fn)
}

// Insert queues attaching value to the entity.
func Insert[T any](c *Commands, e Entity, value T) {
	c.edits = append(c.edits, editCommand{
		entity: e,
		apply: func(w *World) {
			AddEntityComponent(w, e, value)
		},
	})
}

// Remove queues clearing the entity's value of type T.
func Remove[T any](c *Commands, e Entity) {
	c.edits = append(c.edits, editCommand{
		entity: e,
		apply: func(w *World) {
			RemoveComponent[T](w, e)
		},
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.destroys) + len(c.edits) + len(c.defers)
}

// Flush applies all queued commands to the world and resets the buffer.
// Destroys run first; inserts and removes aimed at an entity that is no longer
// active, whether destroyed in this flush or earlier, are dropped. Deferred
// functions run last, in queue order.
func (c *Commands) Flush(w *World) {
	for _, cmd := range c.destroys {
		if cmd.sweep {
			w.Despawn(cmd.entity)
		} else {
			w.DestroyEntity(cmd.entity)
		}
	}

	for _, cmd := range c.edits {
		if w.Entities().IsActive(cmd.entity) {
			cmd.apply(w)
		}
	}

	defers := c.defers
	c.destroys = c.destroys[:0]
	c.edits = c.edits[:0]
	c.defers = nil

	for _, fn := range defers {
		fn(w)
	}
}
