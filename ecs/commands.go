package ecs

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// Systems iterate views while holding arena borrows, so entity creation, removal and
// component changes queued here are applied once every borrow has been released.
type Commands struct {
	world   *World
	spawns  []*EntityBuilder
	frees   []Entity
	adds    []componentCommand
	removes []componentCommand
	defers  []func()
}

// NewCommands creates an empty buffer bound to world.
func NewCommands(world *World) *Commands {
	return &Commands{world: world}
}

type componentCommand struct {
	entity Entity
	apply  func(w *World)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn returns a builder whose entity is created on Flush. Stage its
// components with With and WithDefault; do not call Finish.
func (c *Commands) Spawn() *EntityBuilder {
	b := c.world.Build()
	c.spawns = append(c.spawns, b)
	return b
}

// Free queues an entity removal.
func (c *Commands) Free(entity Entity) {
	c.frees = append(c.frees, entity)
}

// QueueAdd queues adding v as the T of entity.
func QueueAdd[T any](c *Commands, entity Entity, v T) {
	c.adds = append(c.adds, componentCommand{
		entity: entity,
		apply: func(w *World) {
			Add(w, entity, v)
		},
	})
}

// QueueRemove queues removing the T of entity.
func QueueRemove[T any](c *Commands, entity Entity) {
	c.removes = append(c.removes, componentCommand{
		entity: entity,
		apply: func(w *World) {
			Remove[T](w, entity)
		},
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.frees) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to the world, resetting the buffer state.
// Frees run first, and component changes queued for freed entities are dropped.
func (c *Commands) Flush() {
	freed := make(map[Entity]bool, len(c.frees))

	for _, e := range c.frees {
		c.world.Free(e)
		freed[e] = true
	}

	for _, cmd := range c.removes {
		if !freed[cmd.entity] {
			cmd.apply(c.world)
		}
	}

	for _, cmd := range c.adds {
		if !freed[cmd.entity] {
			cmd.apply(c.world)
		}
	}

	for _, b := range c.spawns {
		b.Finish()
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.frees = c.frees[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
