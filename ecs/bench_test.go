package ecs_test

import (
	"context"
	"testing"

	"github.com/plus3/grove/ecs"
)

func BenchmarkBuild(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.With(ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}), Velocity{DX: 0.5, DY: 0.5}).Finish()
	}
}

func BenchmarkBuildWithMultipleComponents(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder := world.Build()
		ecs.With(builder, Position{X: 1.0, Y: 2.0})
		ecs.With(builder, Velocity{DX: 0.5, DY: 0.5})
		ecs.With(builder, Health{Current: 100, Max: 100})
		ecs.With(builder, Name{Value: "Entity"})
		builder.Finish()
	}
}

func BenchmarkFree(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = ecs.With(ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}), Velocity{DX: 0.5, DY: 0.5}).Finish()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Free(ids[i])
	}
}

func BenchmarkGet(b *testing.B) {
	world := newTestWorld()
	id := ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}).Finish()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Position](world, id)
	}
}

func BenchmarkFetchGet(b *testing.B) {
	world := newTestWorld()
	id := ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}).Finish()
	pos := ecs.Read[Position](world)
	defer pos.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pos.Get(id)
	}
}

func BenchmarkAdd(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}).Finish()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Add(world, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkRemove(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = ecs.With(ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}), Velocity{DX: 0.5, DY: 0.5}).Finish()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Remove[Velocity](world, ids[i])
	}
}

func benchmarkViewIter(b *testing.B, n int) {
	world := newTestWorld()
	for i := 0; i < n; i++ {
		ecs.With(ecs.With(world.Build(), Position{X: float32(i), Y: float32(i)}), Velocity{DX: 0.5, DY: 0.5}).Finish()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view, vel, pos := ecs.ViewR1W1[Velocity, Position](world)
		for e := range view.Iter() {
			v := vel.GetUnchecked(e)
			p := pos.GetMutUnchecked(e)
			p.X += v.DX
			p.Y += v.DY
		}
		ecs.ReleaseAll(vel, pos)
	}
}

func BenchmarkViewIter(b *testing.B) {
	benchmarkViewIter(b, 1000)
}

func BenchmarkViewIterLarge(b *testing.B) {
	benchmarkViewIter(b, 10000)
}

func BenchmarkViewIterSparse(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 10000; i++ {
		builder := ecs.With(world.Build(), Position{X: float32(i)})
		if i%100 == 0 {
			ecs.With(builder, AI{State: i})
		}
		builder.Finish()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view, ai := ecs.ViewR1[AI](world)
		for e := range view.Iter() {
			_ = ai.GetUnchecked(e)
		}
		ai.Release()
	}
}

func BenchmarkParEachLarge(b *testing.B) {
	world := newTestWorld()
	for i := 0; i < 10000; i++ {
		ecs.With(ecs.With(world.Build(), Position{X: float32(i), Y: float32(i)}), Velocity{DX: 0.5, DY: 0.5}).Finish()
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view, vel, pos := ecs.ViewR1W1[Velocity, Position](world)
		_ = ecs.ParEach(ctx, view, 4, func(e ecs.Entity) error {
			v := vel.GetUnchecked(e)
			p := pos.GetMutUnchecked(e)
			p.X += v.DX
			p.Y += v.DY
			return nil
		})
		ecs.ReleaseAll(vel, pos)
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := ecs.With(ecs.With(world.Build(), Position{X: 1.0, Y: 2.0}), Velocity{DX: 0.5, DY: 0.5}).Finish()
		_, _ = ecs.Get[Position](world, id)
		ecs.Add(world, id, Health{Current: 100, Max: 100})
		_ = ecs.Has[Health](world, id)
		world.Free(id)
	}
}
