package ecs

// EntityBuilder stages the components of an entity that does not exist yet.
// Finish allocates the entity and publishes all staged components at once,
// so no view ever observes it partially built.
type EntityBuilder struct {
	world   *World
	mask    Mask
	inserts []func(index uint32)
	done    bool
}

// Build starts staging a new entity.
func (w *World) Build() *EntityBuilder {
	return &EntityBuilder{world: w}
}

// With stages v as the T of the entity under construction. Staging the same
// type twice keeps the last value.
func With[T any](b *EntityBuilder, v T) *EntityBuilder {
	if b.done {
		panic("ecs: builder already finished")
	}
	c := cellFor[T](b.world)
	arena := c.arena.(Arena[T])
	b.mask.Set(c.ordinal)
	b.inserts = append(b.inserts, func(index uint32) {
		arena.Insert(index, v)
	})
	return b
}

// WithDefault stages the default value of T.
func WithDefault[T any](b *EntityBuilder) *EntityBuilder {
	return With(b, defaultValue[T]())
}

// Finish creates the entity. Every staged arena is borrowed for writing
// before the entity exists, so a conflicting borrow panics without leaving
// a half-built entity behind.
func (b *EntityBuilder) Finish() Entity {
	if b.done {
		panic("ecs: builder already finished")
	}
	b.done = true

	w := b.world
	acquired := make([]*arenaCell, 0, b.mask.Count())
	defer func() {
		for _, c := range acquired {
			c.flag.releaseWrite()
		}
	}()
	for _, ord := range b.mask.Bits() {
		c := w.cells[ord]
		c.flag.acquireWrite(c.typ)
		acquired = append(acquired, c)
	}

	e := w.Create()
	for _, insert := range b.inserts {
		insert(e.Index())
	}
	w.masks[e.Index()] = b.mask
	return e
}
