package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
)

// TransformReader is satisfied by both ecs.Fetch[Transform] and
// ecs.FetchMut[Transform].
type TransformReader interface {
	Get(e ecs.Entity) (Transform, bool)
}

// parentWorld composes the transforms of the ancestors of e. Ancestors
// without a Transform count as identity.
func parentWorld(nodes NodeReader, transforms TransformReader, e ecs.Entity) Transform {
	world := NewTransform()
	for v := range Ancestors(nodes, e) {
		if t, ok := transforms.Get(v); ok {
			world = t.Concat(world)
		}
	}
	return world
}

// WorldTransform returns the transform of e in world space.
func WorldTransform(nodes NodeReader, transforms TransformReader, e ecs.Entity) (Transform, error) {
	local, ok := transforms.Get(e)
	if !ok {
		return Transform{}, errors.Wrapf(ErrNonTransformFound, "entity %v", e)
	}
	return parentWorld(nodes, transforms, e).Concat(local), nil
}

// setWorldTransform solves for the local transform of e that places it at
// world in world space.
func setWorldTransform(nodes NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, world Transform) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(ErrNonTransformFound, "entity %v", e)
	}
	inverse, ok := parentWorld(nodes, transforms, e).Inverse()
	if !ok {
		return errors.Wrapf(ErrCanNotInverseTransform, "parent of %v", e)
	}
	*local = inverse.Concat(world)
	return nil
}

// WorldPosition returns the position of e in world space.
func WorldPosition(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Vec3, error) {
	world, err := WorldTransform(nodes, transforms, e)
	return world.Position, err
}

// SetWorldPosition moves e to pos in world space by updating its local position.
func SetWorldPosition(nodes NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, pos mgl32.Vec3) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(ErrNonTransformFound, "entity %v", e)
	}
	inverse, ok := parentWorld(nodes, transforms, e).Inverse()
	if !ok {
		return errors.Wrapf(ErrCanNotInverseTransform, "parent of %v", e)
	}
	local.Position = inverse.TransformPoint(pos)
	return nil
}

// WorldRotation returns the rotation of e in world space.
func WorldRotation(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Quat, error) {
	world, err := WorldTransform(nodes, transforms, e)
	return world.Rotation, err
}

// SetWorldRotation sets the world rotation of e by updating its local rotation.
func SetWorldRotation(nodes NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, rot mgl32.Quat) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(ErrNonTransformFound, "entity %v", e)
	}
	parent := parentWorld(nodes, transforms, e)
	local.Rotation = parent.Rotation.Inverse().Mul(rot)
	return nil
}

// WorldScale returns the uniform scale of e in world space.
func WorldScale(nodes NodeReader, transforms TransformReader, e ecs.Entity) (float32, error) {
	world, err := WorldTransform(nodes, transforms, e)
	return world.Scale, err
}

// SetWorldScale sets the world scale of e. When the ancestors collapse to a
// zero scale the value is stored as the local scale.
func SetWorldScale(nodes NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, scale float32) error {
	local := transforms.GetMut(e)
	if local == nil {
		return errors.Wrapf(ErrNonTransformFound, "entity %v", e)
	}
	parent := parentWorld(nodes, transforms, e)
	if parent.Scale < epsilon && parent.Scale > -epsilon {
		local.Scale = scale
	} else {
		local.Scale = scale / parent.Scale
	}
	return nil
}

// WorldMatrix returns the matrix from the local space of e to world space.
func WorldMatrix(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Mat4, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return world.Matrix(), nil
}

// InverseWorldMatrix returns the matrix from world space to the local space of e.
func InverseWorldMatrix(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Mat4, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	inverse, ok := world.Inverse()
	if !ok {
		return mgl32.Mat4{}, errors.Wrapf(ErrCanNotInverseTransform, "entity %v", e)
	}
	return inverse.Matrix(), nil
}

// WorldViewMatrix returns the view matrix of a camera placed at e. Scale is
// ignored: M = (T * R)^-1.
func WorldViewMatrix(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Mat4, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	p := world.Position.Mul(-1)
	it := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	ir := world.Rotation.Mat4().Transpose()
	return ir.Mul4(it), nil
}

// InverseWorldViewMatrix maps view space back to world space.
func InverseWorldViewMatrix(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Mat4, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	p := world.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(world.Rotation.Mat4()), nil
}

// TransformPoint maps a point from the local space of e to world space.
func TransformPoint(nodes NodeReader, transforms TransformReader, e ecs.Entity, v mgl32.Vec3) (mgl32.Vec3, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return world.TransformPoint(v), nil
}

// TransformVector maps a vector from the local space of e to world space.
// Position does not apply but scale does.
func TransformVector(nodes NodeReader, transforms TransformReader, e ecs.Entity, v mgl32.Vec3) (mgl32.Vec3, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return world.TransformVector(v), nil
}

// TransformDirection rotates a direction from the local space of e to world
// space. The result has the same length as v.
func TransformDirection(nodes NodeReader, transforms TransformReader, e ecs.Entity, v mgl32.Vec3) (mgl32.Vec3, error) {
	world, err := WorldTransform(nodes, transforms, e)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return world.TransformDirection(v), nil
}

// Up returns the world space up direction of e.
func Up(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Vec3, error) {
	return TransformDirection(nodes, transforms, e, mgl32.Vec3{0, 1, 0})
}

// Forward returns the world space forward direction of e.
func Forward(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Vec3, error) {
	return TransformDirection(nodes, transforms, e, mgl32.Vec3{0, 0, 1})
}

// Right returns the world space right direction of e.
func Right(nodes NodeReader, transforms TransformReader, e ecs.Entity) (mgl32.Vec3, error) {
	return TransformDirection(nodes, transforms, e, mgl32.Vec3{1, 0, 0})
}

// LookAt rotates e so its forward axis points at center.
func LookAt(nodes NodeReader, transforms *ecs.FetchMut[Transform], e ecs.Entity, center, up mgl32.Vec3) error {
	eye, err := WorldPosition(nodes, transforms, e)
	if err != nil {
		return err
	}
	return SetWorldRotation(nodes, transforms, e, LookRotation(center.Sub(eye), up))
}

// SetParentKeepPose attaches child to parent. With keepWorldPose the local
// transform of child is solved so its world transform does not change;
// otherwise the local transform is left as is. When the world transform of
// parent cannot be inverted the hierarchy is left untouched.
func SetParentKeepPose(nodes *ecs.FetchMut[Node], transforms *ecs.FetchMut[Transform], child, parent ecs.Entity, keepWorldPose bool) error {
	if !keepWorldPose {
		return SetParent(nodes, child, parent)
	}

	world, err := WorldTransform(nodes, transforms, child)
	if err != nil {
		return err
	}
	target := parentWorld(nodes, transforms, parent)
	if local, ok := transforms.Get(parent); ok {
		target = target.Concat(local)
	}
	inverse, ok := target.Inverse()
	if !ok {
		return errors.Wrapf(ErrCanNotInverseTransform, "new parent %v of %v", parent, child)
	}

	if err := SetParent(nodes, child, parent); err != nil {
		return err
	}
	*transforms.GetMutUnchecked(child) = inverse.Concat(world)
	return nil
}

// RemoveFromParentKeepPose detaches child, optionally keeping its world pose.
func RemoveFromParentKeepPose(nodes *ecs.FetchMut[Node], transforms *ecs.FetchMut[Transform], child ecs.Entity, keepWorldPose bool) error {
	if !keepWorldPose {
		RemoveFromParent(nodes, child)
		return nil
	}

	world, err := WorldTransform(nodes, transforms, child)
	if err != nil {
		return err
	}
	RemoveFromParent(nodes, child)
	return setWorldTransform(nodes, transforms, child, world)
}

// WorldTransforms computes the world transform of every entity in view that
// carries a Transform, walking each hierarchy once from its root.
func WorldTransforms(view ecs.View, nodes NodeReader, transforms TransformReader) map[ecs.Entity]Transform {
	result := make(map[ecs.Entity]Transform)
	for e := range view.Iter() {
		if !IsRoot(nodes, e) {
			continue
		}
		world := NewTransform()
		if t, ok := transforms.Get(e); ok {
			world = t
			result[e] = t
		}
		worldTransformsFrom(nodes, transforms, e, world, result)
	}
	return result
}

func worldTransformsFrom(nodes NodeReader, transforms TransformReader, ancestor ecs.Entity, world Transform, result map[ecs.Entity]Transform) {
	for child := range Children(nodes, ancestor) {
		childWorld := world
		if t, ok := transforms.Get(child); ok {
			childWorld = world.Concat(t)
			result[child] = childWorld
		}
		worldTransformsFrom(nodes, transforms, child, childWorld, result)
	}
}
