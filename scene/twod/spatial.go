package twod

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
)

// Reader is satisfied by both ecs.Fetch[Transform] and ecs.FetchMut[Transform].
type Reader interface {
	Get(e ecs.Entity) (Transform, bool)
}

// Register registers the node and 2-D transform types with w.
func Register(w *ecs.World) {
	scene.RegisterNode(w)
	ecs.RegisterComponent[Transform](w)
}

func parentWorld(nodes scene.NodeReader, transforms Reader, e ecs.Entity) Transform {
	world := Identity()
	for v := range scene.Ancestors(nodes, e) {
		if t, ok := transforms.Get(v); ok {
			world = t.Mul(world)
		}
	}
	return world
}

// World returns the transform of e in world space. Ancestors without a
// Transform count as identity.
func World(nodes scene.NodeReader, transforms Reader, e ecs.Entity) (Transform, error) {
	local, ok := transforms.Get(e)
	if !ok {
		return Transform{}, errors.Wrapf(scene.ErrNonTransformFound, "entity %v", e)
	}
	return parentWorld(nodes, transforms, e).Mul(local), nil
}

// SetWorld solves for the local transform that places e at world.
func SetWorld(nodes scene.NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, world Transform) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(scene.ErrNonTransformFound, "entity %v", e)
	}
	inverse, ok := parentWorld(nodes, transforms, e).Inverse()
	if !ok {
		return errors.Wrapf(scene.ErrCanNotInverseTransform, "parent of %v", e)
	}
	*local = inverse.Mul(world)
	return nil
}

// WorldPosition returns the world space origin of e.
func WorldPosition(nodes scene.NodeReader, transforms Reader, e ecs.Entity) (mgl32.Vec2, error) {
	world, err := World(nodes, transforms, e)
	return world.Offset, err
}

// SetWorldPosition moves e to pos in world space by updating its local offset.
func SetWorldPosition(nodes scene.NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, pos mgl32.Vec2) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(scene.ErrNonTransformFound, "entity %v", e)
	}
	inverse, ok := parentWorld(nodes, transforms, e).Inverse()
	if !ok {
		return errors.Wrapf(scene.ErrCanNotInverseTransform, "parent of %v", e)
	}
	local.Offset = inverse.TransformPoint(pos)
	return nil
}

// SetParentKeepPose attaches child to parent, optionally solving the local
// transform of child so its world transform does not change. A singular
// parent leaves the hierarchy untouched.
func SetParentKeepPose(nodes *ecs.FetchMut[scene.Node], transforms *ecs.FetchMut[Transform], child, parent ecs.Entity, keepWorldPose bool) error {
	if !keepWorldPose {
		return scene.SetParent(nodes, child, parent)
	}

	world, err := World(nodes, transforms, child)
	if err != nil {
		return err
	}
	target := parentWorld(nodes, transforms, parent)
	if local, ok := transforms.Get(parent); ok {
		target = target.Mul(local)
	}
	inverse, ok := target.Inverse()
	if !ok {
		return errors.Wrapf(scene.ErrCanNotInverseTransform, "new parent %v of %v", parent, child)
	}

	if err := scene.SetParent(nodes, child, parent); err != nil {
		return err
	}
	*transforms.GetMutUnchecked(child) = inverse.Mul(world)
	return nil
}

// WorldTransforms computes the world transform of every entity in view that
// carries a Transform.
func WorldTransforms(view ecs.View, nodes scene.NodeReader, transforms Reader) map[ecs.Entity]Transform {
	result := make(map[ecs.Entity]Transform)
	for e := range scene.Roots(view, nodes) {
		world := Identity()
		if t, ok := transforms.Get(e); ok {
			world = t
			result[e] = t
		}
		walk(nodes, transforms, e, world, result)
	}
	return result
}

func walk(nodes scene.NodeReader, transforms Reader, e ecs.Entity, world Transform, result map[ecs.Entity]Transform) {
	for child := range scene.Children(nodes, e) {
		childWorld := world
		if t, ok := transforms.Get(child); ok {
			childWorld = world.Mul(t)
			result[child] = childWorld
		}
		walk(nodes, transforms, child, childWorld, result)
	}
}
