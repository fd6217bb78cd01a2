package main

import (
	"context"
	"math/rand"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
)

// Spin rotates an entity about its local up axis.
type Spin struct {
	RadiansPerSecond float32
}

// Drift moves an entity back and forth along its parent's x-axis.
type Drift struct {
	Speed float32
	Range float32
	Phase float32
}

// FrameStats is a singleton the systems fill in each frame.
type FrameStats struct {
	WorldTransforms int
	Trees           int
	Respawned       int
}

type SpinSystem struct{}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) {
	view, spins, transforms := ecs.ViewR1W1[Spin, scene.Transform](frame.World)
	defer ecs.ReleaseAll(spins, transforms)

	dt := float32(frame.DeltaTime)
	for e := range view.Iter() {
		angle := spins.GetUnchecked(e).RadiansPerSecond * dt
		transforms.GetMutUnchecked(e).Rotate(mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}))
	}
}

// DriftSystem updates drifting entities on several goroutines.
type DriftSystem struct {
	Workers int
}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) {
	view, drifts, transforms := ecs.ViewW2[Drift, scene.Transform](frame.World)
	defer ecs.ReleaseAll(drifts, transforms)

	dt := float32(frame.DeltaTime)
	_ = ecs.ParEach(context.Background(), view, s.Workers, func(e ecs.Entity) error {
		d := drifts.GetMutUnchecked(e)
		t := transforms.GetMutUnchecked(e)
		d.Phase += d.Speed * dt
		if d.Phase > d.Range || d.Phase < -d.Range {
			d.Speed = -d.Speed
		}
		t.Position[0] = d.Phase
		return nil
	})
}

// WorldTransformSystem resolves every world transform, the work a renderer
// would do each frame.
type WorldTransformSystem struct {
	Stats ecs.Singleton[FrameStats]
}

func (s *WorldTransformSystem) Execute(frame *ecs.UpdateFrame) {
	nodes := ecs.Read[scene.Node](frame.World)
	view, transforms := ecs.ViewR1[scene.Transform](frame.World)
	defer ecs.ReleaseAll(nodes, transforms)

	worlds := scene.WorldTransforms(view, nodes, transforms)

	trees := 0
	for range scene.Roots(view, nodes) {
		trees++
	}

	stats := s.Stats.Get()
	stats.WorldTransforms = len(worlds)
	stats.Trees = trees
}

// ChurnSystem frees a random tree each frame and queues a fresh instance of
// the prefab in its place.
type ChurnSystem struct {
	Prefab *scene.Prefab
	Rand   *rand.Rand
	Stats  ecs.Singleton[FrameStats]
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	nodes := ecs.Read[scene.Node](frame.World)
	defer nodes.Release()

	var roots []ecs.Entity
	for root := range scene.Roots(frame.World.ViewTypes(reflect.TypeFor[scene.Node]()), nodes) {
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		return
	}

	root := roots[s.Rand.Intn(len(roots))]
	frame.Commands.Defer(func() {
		scene.Delete(frame.World, root)
		entities, err := s.Prefab.Instantiate(frame.World)
		if err != nil {
			return
		}
		decorate(frame.World, entities, s.Rand)
		s.Stats.Get().Respawned++
	})
}

// decorate adds motion components to a fresh prefab instance.
func decorate(world *ecs.World, entities []ecs.Entity, rng *rand.Rand) {
	for i, e := range entities {
		if i%2 == 0 {
			ecs.Add(world, e, Spin{RadiansPerSecond: rng.Float32()*2 - 1})
		} else {
			ecs.Add(world, e, Drift{Speed: rng.Float32() + 0.1, Range: 2})
		}
	}
}

// buildPrefab returns a tree where every node above the given depth has
// fanout children.
func buildPrefab(depth, fanout int) *scene.Prefab {
	p := scene.NewPrefab("stress-tree")
	level := []int{p.Add(-1, "root", scene.NewTransform())}
	for d := 1; d < depth; d++ {
		var next []int
		for _, parent := range level {
			for i := 0; i < fanout; i++ {
				t := scene.NewTransform()
				t.Position = mgl32.Vec3{float32(i), 1, 0}
				t.Scale = 0.9
				next = append(next, p.Add(parent, "node", t))
			}
		}
		level = next
	}
	return p
}
