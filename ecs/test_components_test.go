package ecs_test

import "github.com/plus3/grove/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

// Resource counts Dispose calls through a shared counter.
type Resource struct {
	Disposed *int
}

func (r *Resource) Dispose() {
	*r.Disposed++
}

// Scale has a non-zero default.
type Scale struct {
	Factor float32
}

func (s *Scale) SetDefaults() {
	s.Factor = 1
}

func newTestWorld() *ecs.World {
	world := ecs.NewWorld()
	ecs.RegisterComponent[Position](world)
	ecs.RegisterComponent[Velocity](world)
	ecs.RegisterComponent[Name](world)
	ecs.RegisterComponent[Health](world)
	ecs.RegisterComponent[PlayerController](world, ecs.WithSparseArena())
	ecs.RegisterComponent[AI](world, ecs.WithSparseArena())
	ecs.RegisterComponent[Score](world)
	ecs.RegisterComponent[Tag](world, ecs.WithSparseArena())
	ecs.RegisterComponent[Temperature](world)
	ecs.RegisterComponent[Resource](world)
	ecs.RegisterComponent[Scale](world)
	return world
}
