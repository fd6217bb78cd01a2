package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
	"github.com/stretchr/testify/assert"
)

const delta = 1e-4

func newSceneWorld() *ecs.World {
	w := ecs.NewWorld()
	scene.Register(w)
	return w
}

// spawn creates an entity with a transform at pos.
func spawn(w *ecs.World, pos mgl32.Vec3) ecs.Entity {
	t := scene.NewTransform()
	t.Position = pos
	return ecs.With(w.Build(), t).Finish()
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}
