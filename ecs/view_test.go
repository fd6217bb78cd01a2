package ecs_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/plus3/grove/ecs"
	"github.com/stretchr/testify/assert"
)

func TestViewFiltersByMask(t *testing.T) {
	world := newTestWorld()
	both := ecs.With(ecs.With(world.Build(), Position{X: 1}), Velocity{DX: 1}).Finish()
	onlyPos := ecs.With(world.Build(), Position{X: 2}).Finish()
	onlyVel := ecs.With(world.Build(), Velocity{DX: 3}).Finish()

	view, pos, vel := ecs.ViewR2[Position, Velocity](world)
	defer ecs.ReleaseAll(pos, vel)

	assert.Equal(t, []ecs.Entity{both}, slices.Collect(view.Iter()))

	posView, posFetch := ecs.ViewR1[Position](world)
	defer posFetch.Release()
	assert.Equal(t, []ecs.Entity{both, onlyPos}, slices.Collect(posView.Iter()))

	assert.Equal(t, []ecs.Entity{both, onlyPos, onlyVel}, slices.Collect(world.Entities().Iter()))
}

func TestViewTypes(t *testing.T) {
	world := newTestWorld()
	both := ecs.With(ecs.With(world.Build(), Position{X: 1}), Velocity{DX: 1}).Finish()
	ecs.With(world.Build(), Position{X: 2}).Finish()

	view := world.ViewTypes(reflect.TypeFor[Position](), reflect.TypeFor[Velocity]())
	assert.Equal(t, []ecs.Entity{both}, slices.Collect(view.Iter()))

	// No arena is borrowed, so writers are free to proceed.
	vel := ecs.Write[Velocity](world)
	vel.Release()

	assert.Equal(t, 2, world.ViewTypes().Count())
	assert.Panics(t, func() { world.ViewTypes(reflect.TypeFor[struct{ Unregistered int }]()) })
}

func TestViewSkipsFreedEntities(t *testing.T) {
	world := newTestWorld()
	var entities []ecs.Entity
	for i := 0; i < 5; i++ {
		entities = append(entities, ecs.With(world.Build(), Position{X: float32(i)}).Finish())
	}
	world.Free(entities[1])
	world.Free(entities[3])

	view, pos := ecs.ViewR1[Position](world)
	defer pos.Release()

	var xs []float32
	for e := range view.Iter() {
		xs = append(xs, pos.GetUnchecked(e).X)
	}
	assert.Equal(t, []float32{0, 2, 4}, xs)
	assert.Equal(t, 3, view.Count())
	assert.Equal(t, 5, view.Len())
}

func TestViewWrite(t *testing.T) {
	world := newTestWorld()
	for i := 0; i < 3; i++ {
		ecs.With(ecs.With(world.Build(), Position{}), Velocity{DX: float32(i), DY: 1}).Finish()
	}

	view, vel, pos := ecs.ViewR1W1[Velocity, Position](world)
	for e := range view.Iter() {
		v := vel.GetUnchecked(e)
		p := pos.GetMutUnchecked(e)
		p.X += v.DX
		p.Y += v.DY
	}
	ecs.ReleaseAll(vel, pos)

	readView, positions := ecs.ViewR1[Position](world)
	defer positions.Release()
	var got []Position
	for e := range readView.Iter() {
		p, _ := positions.Get(e)
		got = append(got, p)
	}
	assert.Equal(t, []Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, got)
}

func TestViewIsRestartable(t *testing.T) {
	world := newTestWorld()
	ecs.With(world.Build(), Position{}).Finish()
	ecs.With(world.Build(), Position{}).Finish()

	view, pos := ecs.ViewR1[Position](world)
	defer pos.Release()

	assert.Equal(t, slices.Collect(view.Iter()), slices.Collect(view.Iter()))
}

func TestViewSeesLaterEntities(t *testing.T) {
	world := newTestWorld()
	view := world.Entities()
	assert.Equal(t, 0, view.Count())

	e := world.Create()
	assert.Equal(t, []ecs.Entity{e}, slices.Collect(view.Iter()))
}

func TestViewEarlyBreak(t *testing.T) {
	world := newTestWorld()
	for i := 0; i < 10; i++ {
		world.Create()
	}

	n := 0
	for range world.Entities().Iter() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestViewSplit(t *testing.T) {
	world := newTestWorld()
	var all []ecs.Entity
	for i := 0; i < 10; i++ {
		all = append(all, ecs.With(world.Build(), Position{}).Finish())
	}

	view, pos := ecs.ViewR1[Position](world)
	defer pos.Release()

	left, right := view.SplitAt(4)
	assert.Equal(t, 4, left.Len())
	assert.Equal(t, 6, right.Len())
	assert.Equal(t, all[:4], slices.Collect(left.Iter()))
	assert.Equal(t, all[4:], slices.Collect(right.Iter()))

	a, b, ok := view.Split()
	assert.True(t, ok)
	assert.Equal(t, all, append(slices.Collect(a.Iter()), slices.Collect(b.Iter())...))

	one, _ := view.SplitAt(1)
	_, _, ok = one.Split()
	assert.False(t, ok)

	all2, none := view.SplitAt(100)
	assert.Equal(t, 10, all2.Len())
	assert.Equal(t, 0, none.Len())
}

func TestViewConflictingBorrowsPanic(t *testing.T) {
	world := newTestWorld()

	_, pos := ecs.ViewW1[Position](world)
	defer pos.Release()

	assert.Panics(t, func() { ecs.ViewR1[Position](world) })
	assert.NotPanics(t, func() {
		_, vel := ecs.ViewR1[Velocity](world)
		vel.Release()
	})
}

func TestViewReleasesTakenBorrowsOnConflict(t *testing.T) {
	world := newTestWorld()

	assert.Panics(t, func() { ecs.ViewR1W1[Position, Position](world) })
	assert.Panics(t, func() { ecs.ViewR2W2[Velocity, Health, Velocity, AI](world) })

	// Every borrow taken before the conflicting one was released.
	assert.NotPanics(t, func() {
		_, pos, vel, health := ecs.ViewW3[Position, Velocity, Health](world)
		ecs.ReleaseAll(pos, vel, health)
	})

	_, health := ecs.ViewW1[Health](world)
	assert.Panics(t, func() { ecs.ViewR2[Position, Health](world) })
	health.Release()
	assert.NotPanics(t, func() {
		_, pos := ecs.ViewW1[Position](world)
		pos.Release()
	})
}
