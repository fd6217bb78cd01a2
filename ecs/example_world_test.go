package ecs_test

import (
	"fmt"

	"github.com/plus3/grove/ecs"
)

// ExampleWorld demonstrates the basic lifecycle of an entity: creation,
// adding and reading components, and freeing it. A freed handle stays dead
// even after its slot is reused.
func ExampleWorld() {
	world := ecs.NewWorld()
	ecs.RegisterComponent[Position](world)
	ecs.RegisterComponent[Name](world, ecs.WithSparseArena())

	player := world.Create()
	ecs.Add(world, player, Position{X: 1, Y: 2})
	ecs.Add(world, player, Name{Value: "player"})

	name, _ := ecs.Get[Name](world, player)
	fmt.Println(player, name.Value)

	world.Free(player)
	reused := world.Create()
	fmt.Println(reused, world.IsAlive(player), ecs.Has[Position](world, reused))

	// Output:
	// Entity(0, 0) player
	// Entity(0, 1) false false
}

// ExampleEntityBuilder demonstrates creating an entity with all of its
// components in one step. The entity becomes visible to views only once
// Finish publishes every staged component.
func ExampleEntityBuilder() {
	world := ecs.NewWorld()
	ecs.RegisterComponent[Position](world)
	ecs.RegisterComponent[Velocity](world)

	builder := world.Build()
	ecs.With(builder, Position{X: 3})
	ecs.With(builder, Velocity{DX: 1})
	fmt.Println("before finish:", world.Len())

	e := builder.Finish()
	fmt.Println("after finish:", world.Len(), len(world.ComponentTypes(e)))

	// Output:
	// before finish: 0
	// after finish: 1 2
}
