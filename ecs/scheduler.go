package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// SystemStats holds the execution timings of one registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

func (s *SystemStats) record(d time.Duration) {
	if s.ExecutionCount == 0 || d < s.MinDuration {
		s.MinDuration = d
	}
	s.MaxDuration = max(s.MaxDuration, d)
	s.ExecutionCount++
	s.LastDuration = d
	s.TotalDuration += d
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
}

// SchedulerStats is a snapshot of the timings of every registered system.
type SchedulerStats struct {
	Frames          int64
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type scheduledSystem struct {
	system System
	stats  SystemStats
}

// Scheduler runs its systems in registration order, one frame at a time.
// Each frame shares one Commands buffer, flushed after the last system.
type Scheduler struct {
	world   *World
	systems []*scheduledSystem
	frames  int64
}

// NewScheduler creates a scheduler for world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{world: world}
}

// Register appends system to the frame. Struct fields of system that
// implement Initializer, such as Singleton, are bound to the world first;
// then system itself is initialized if it implements Initializer.
func (s *Scheduler) Register(system System) {
	bindFields(s.world, system)
	if initializer, ok := system.(Initializer); ok {
		initializer.Init(s.world)
	}

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.systems = append(s.systems, &scheduledSystem{
		system: system,
		stats:  SystemStats{Name: t.Name()},
	})
}

func bindFields(world *World, system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	for i := range v.NumField() {
		field := v.Field(i)
		if field.Kind() != reflect.Struct || !field.CanSet() {
			continue
		}
		if initializer, ok := field.Addr().Interface().(Initializer); ok {
			initializer.Init(world)
		}
	}
}

// Once runs every system with delta time dt, then flushes the frame's
// commands. A system that returns while still holding a borrow panics, since
// the next system touching that arena would fail far from the cause.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.world)

	for _, sys := range s.systems {
		held := s.world.borrowCount()
		start := time.Now()
		sys.system.Execute(frame)
		sys.stats.record(time.Since(start))

		if s.world.borrowCount() > held {
			panic(fmt.Sprintf("ecs: system %s returned without releasing its borrows", sys.stats.Name))
		}
	}

	frame.Commands.Flush()
	s.frames++
}

// Run calls Once on every tick of interval until ctx is done. The delta time
// passed to each frame is the wall time since the previous one.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Stats returns a snapshot of the system timings in registration order.
func (s *Scheduler) Stats() SchedulerStats {
	stats := SchedulerStats{
		Frames:      s.frames,
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, sys := range s.systems {
		stats.Systems[i] = sys.stats
		stats.TotalExecutions += sys.stats.ExecutionCount
	}
	return stats
}
