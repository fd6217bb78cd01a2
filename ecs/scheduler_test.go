package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/grove/ecs"
	"github.com/stretchr/testify/assert"
)

type MovementSystem struct {
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	view, vel, pos := ecs.ViewR1W1[Velocity, Position](frame.World)
	defer ecs.ReleaseAll(vel, pos)
	for e := range view.Iter() {
		v := vel.GetUnchecked(e)
		p := pos.GetMutUnchecked(e)
		p.X += v.DX * float32(frame.DeltaTime)
		p.Y += v.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	view, health := ecs.ViewR1[Health](frame.World)
	defer health.Release()
	for e := range view.Iter() {
		s.TotalHealth += float64(health.GetUnchecked(e).Current)
	}
}

type RegisteringSystem struct {
	initialized bool
}

func (s *RegisteringSystem) Init(world *ecs.World) {
	ecs.RegisterComponent[AI](world)
	s.initialized = true
}

func (s *RegisteringSystem) Execute(frame *ecs.UpdateFrame) {}

type ScoreKeeper struct {
	Score ecs.Singleton[GameScore]
}

func (s *ScoreKeeper) Execute(frame *ecs.UpdateFrame) {
	s.Score.Get().Points += 10
}

type LeakySystem struct{}

func (s *LeakySystem) Execute(frame *ecs.UpdateFrame) {
	ecs.Read[Position](frame.World)
}

func TestSchedulerRejectsLeakedBorrows(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&LeakySystem{})

	assert.PanicsWithValue(t, "ecs: system LeakySystem returned without releasing its borrows", func() {
		scheduler.Once(1.0 / 60)
	})

	// Borrows taken outside the frame are not blamed on a system.
	other := ecs.NewScheduler(world)
	other.Register(&HealthSystem{})
	vel := ecs.Read[Velocity](world)
	defer vel.Release()
	assert.NotPanics(t, func() { other.Once(1.0 / 60) })
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		health := &HealthSystem{}

		scheduler.Register(movement)
		scheduler.Register(health)

		ecs.With(ecs.With(world.Build(), Position{X: 0, Y: 0}), Velocity{DX: 1, DY: 2}).Finish()
		ecs.With(world.Build(), Health{Current: 100, Max: 100}).Finish()

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}

		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}

		scheduler.Once(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}

		if health.ExecuteCount != 2 {
			t.Errorf("expected HealthSystem to execute twice, got %d", health.ExecuteCount)
		}
	})

	t.Run("custom state persistence", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		ecs.With(world.Build(), Health{Current: 50, Max: 100}).Finish()
		ecs.With(world.Build(), Health{Current: 75, Max: 100}).Finish()

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)

		if health.TotalHealth != 125.0 {
			t.Errorf("expected TotalHealth=125.0, got %f", health.TotalHealth)
		}

		ecs.With(world.Build(), Health{Current: 25, Max: 100}).Finish()

		scheduler.Once(1.0)

		if health.TotalHealth != 150.0 {
			t.Errorf("expected TotalHealth=150.0, got %f", health.TotalHealth)
		}
	})

	t.Run("initializers and singletons", func(t *testing.T) {
		world := ecs.NewWorld()
		scheduler := ecs.NewScheduler(world)
		ecs.NewSingleton(world, GameScore{Level: 1})

		registering := &RegisteringSystem{}
		keeper := &ScoreKeeper{}
		scheduler.Register(registering)
		scheduler.Register(keeper)

		if !registering.initialized || !ecs.IsRegistered[AI](world) {
			t.Error("expected Init to run on Register")
		}

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		if got := ecs.NewSingleton[GameScore](world).Get().Points; got != 20 {
			t.Errorf("expected 20 points, got %d", got)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		e := ecs.With(ecs.With(world.Build(), Position{X: 0, Y: 0}), Velocity{DX: 10, DY: 20}).Finish()

		scheduler.Register(&MovementSystem{})
		scheduler.Once(0.5)

		pos, _ := ecs.Get[Position](world, e)
		if pos.X != 5.0 || pos.Y != 10.0 {
			t.Errorf("expected position to be updated with delta time, got %+v", pos)
		}
	})

	t.Run("commands integration", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)

		spawnSystem := &testSpawnSystem{}
		scheduler.Register(spawnSystem)

		scheduler.Once(1.0)

		if !spawnSystem.executed {
			t.Error("expected spawn system to execute")
		}

		if count := countWith[Velocity](world); count == 0 {
			t.Error("expected spawned entity to be visible after command flush")
		}
	})

	t.Run("stats", func(t *testing.T) {
		world := newTestWorld()
		scheduler := ecs.NewScheduler(world)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&HealthSystem{})

		for i := 0; i < 3; i++ {
			scheduler.Once(1.0 / 60)
		}

		stats := scheduler.Stats()
		if stats.SystemCount != 2 {
			t.Errorf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.TotalExecutions != 6 {
			t.Errorf("expected 6 executions, got %d", stats.TotalExecutions)
		}
		if stats.Systems[0].Name != "MovementSystem" {
			t.Errorf("expected MovementSystem, got %s", stats.Systems[0].Name)
		}
		if stats.Systems[1].ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", stats.Systems[1].ExecutionCount)
		}
	})
}
