package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/plus3/grove/ecs"
	"github.com/plus3/grove/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldAccessors(t *testing.T) {
	w := newSceneWorld()
	parent := spawn(w, mgl32.Vec3{1, 0, 0})
	child := spawn(w, mgl32.Vec3{1, 0, 0})

	nodes := ecs.Write[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	require.NoError(t, scene.SetParent(nodes, child, parent))
	require.NoError(t, scene.SetWorldRotation(nodes, transforms, parent, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})))

	pos, err := scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{1, 1, 0}, pos)

	require.NoError(t, scene.SetWorldScale(nodes, transforms, parent, 2))
	scale, err := scene.WorldScale(nodes, transforms, child)
	require.NoError(t, err)
	assert.InDelta(t, 2, scale, delta)

	pos, err = scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{1, 2, 0}, pos)

	dir, err := scene.TransformDirection(nodes, transforms, child, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, dir)

	vec, err := scene.TransformVector(nodes, transforms, child, mgl32.Vec3{1, 0, 0})
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 2, 0}, vec)

	point, err := scene.TransformPoint(nodes, transforms, child, mgl32.Vec3{0, 0, 1})
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{1, 2, 2}, point)

	right, err := scene.Right(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, right)

	require.NoError(t, scene.SetWorldPosition(nodes, transforms, child, mgl32.Vec3{5, 5, 0}))
	pos, err = scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{5, 5, 0}, pos)
	local, _ := transforms.Get(child)
	assertVec3(t, mgl32.Vec3{2.5, -2, 0}, local.Position)

	// The child inherits the parent's scale; setting it back to 1 in world
	// space halves the local scale.
	require.NoError(t, scene.SetWorldScale(nodes, transforms, child, 1))
	local, _ = transforms.Get(child)
	assert.InDelta(t, 0.5, local.Scale, delta)
}

func TestWorldRotationComposes(t *testing.T) {
	w := newSceneWorld()
	parent := spawn(w, mgl32.Vec3{})
	child := spawn(w, mgl32.Vec3{})

	nodes := ecs.Write[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	require.NoError(t, scene.SetParent(nodes, child, parent))
	quarter := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	transforms.GetMut(parent).Rotation = quarter

	target := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{1, 0, 0})
	require.NoError(t, scene.SetWorldRotation(nodes, transforms, child, target))

	rot, err := scene.WorldRotation(nodes, transforms, child)
	require.NoError(t, err)
	assert.True(t, rot.ApproxEqualThreshold(target, delta), "got %v", rot)
}

func TestLookAt(t *testing.T) {
	w := newSceneWorld()
	e := spawn(w, mgl32.Vec3{})

	nodes := ecs.Read[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	require.NoError(t, scene.LookAt(nodes, transforms, e, mgl32.Vec3{0, 0, -4}, mgl32.Vec3{0, 1, 0}))

	forward, err := scene.Forward(nodes, transforms, e)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, forward)

	up, err := scene.Up(nodes, transforms, e)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, up)

	point, err := scene.TransformPoint(nodes, transforms, e, mgl32.Vec3{0, 0, 4})
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, 0, -4}, point)
}

func TestSetParentKeepPose(t *testing.T) {
	w := newSceneWorld()
	parent := spawn(w, mgl32.Vec3{0, 2, 0})
	child := spawn(w, mgl32.Vec3{1, 1, 0})

	nodes := ecs.Write[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	require.NoError(t, scene.SetParentKeepPose(nodes, transforms, child, parent, true))

	local, _ := transforms.Get(child)
	assertVec3(t, mgl32.Vec3{1, -1, 0}, local.Position)
	pos, err := scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{1, 1, 0}, pos)

	require.NoError(t, scene.RemoveFromParentKeepPose(nodes, transforms, child, true))
	local, _ = transforms.Get(child)
	assertVec3(t, mgl32.Vec3{1, 1, 0}, local.Position)
	assert.True(t, scene.IsRoot(nodes, child))

	// Without keeping the pose the local transform is untouched.
	require.NoError(t, scene.SetParentKeepPose(nodes, transforms, child, parent, false))
	pos, err = scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{1, 3, 0}, pos)
}

func TestSetParentKeepPoseRejectsSingularParent(t *testing.T) {
	w := newSceneWorld()
	flat := spawn(w, mgl32.Vec3{0, 2, 0})
	child := spawn(w, mgl32.Vec3{1, 1, 0})

	nodes := ecs.Write[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)
	transforms.GetMut(flat).Scale = 0

	err := scene.SetParentKeepPose(nodes, transforms, child, flat, true)
	assert.True(t, errors.Is(err, scene.ErrCanNotInverseTransform))
	assert.True(t, scene.IsRoot(nodes, child))
	assert.True(t, scene.IsLeaf(nodes, flat))
	local, _ := transforms.Get(child)
	assertVec3(t, mgl32.Vec3{1, 1, 0}, local.Position)
}

func TestMissingAncestorTransformIsIdentity(t *testing.T) {
	w := newSceneWorld()
	grandparent := spawn(w, mgl32.Vec3{10, 0, 0})
	bare := w.Create()
	child := spawn(w, mgl32.Vec3{1, 0, 0})

	nodes := ecs.Write[scene.Node](w)
	transforms := ecs.Read[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	require.NoError(t, scene.SetParent(nodes, bare, grandparent))
	require.NoError(t, scene.SetParent(nodes, child, bare))

	pos, err := scene.WorldPosition(nodes, transforms, child)
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{11, 0, 0}, pos)

	_, err = scene.WorldPosition(nodes, transforms, bare)
	assert.True(t, errors.Is(err, scene.ErrNonTransformFound))
}

func TestWorldMatrices(t *testing.T) {
	w := newSceneWorld()
	e := spawn(w, mgl32.Vec3{1, 2, 3})

	nodes := ecs.Read[scene.Node](w)
	transforms := ecs.Write[scene.Transform](w)
	defer ecs.ReleaseAll(nodes, transforms)

	transforms.GetMut(e).Rotation = mgl32.QuatRotate(mgl32.DegToRad(60), mgl32.Vec3{0, 0, 1})

	m, err := scene.WorldMatrix(nodes, transforms, e)
	require.NoError(t, err)
	inv, err := scene.InverseWorldMatrix(nodes, transforms, e)
	require.NoError(t, err)
	assert.True(t, m.Mul4(inv).ApproxEqualThreshold(mgl32.Ident4(), delta))

	view, err := scene.WorldViewMatrix(nodes, transforms, e)
	require.NoError(t, err)
	invView, err := scene.InverseWorldViewMatrix(nodes, transforms, e)
	require.NoError(t, err)
	assert.True(t, view.Mul4(invView).ApproxEqualThreshold(mgl32.Ident4(), delta))
	assertVec3(t, mgl32.Vec3{}, mgl32.TransformCoordinate(mgl32.Vec3{1, 2, 3}, view))

	transforms.GetMut(e).Scale = 0
	_, err = scene.InverseWorldMatrix(nodes, transforms, e)
	assert.True(t, errors.Is(err, scene.ErrCanNotInverseTransform))
}

func TestWorldTransforms(t *testing.T) {
	w := newSceneWorld()
	root := spawn(w, mgl32.Vec3{1, 0, 0})
	mid := spawn(w, mgl32.Vec3{0, 1, 0})
	leaf := spawn(w, mgl32.Vec3{0, 0, 1})
	other := spawn(w, mgl32.Vec3{5, 5, 5})

	nodes := ecs.Write[scene.Node](w)
	require.NoError(t, scene.SetParent(nodes, mid, root))
	require.NoError(t, scene.SetParent(nodes, leaf, mid))
	nodes.Release()

	reader := ecs.Read[scene.Node](w)
	view, transforms := ecs.ViewR1[scene.Transform](w)
	defer ecs.ReleaseAll(reader, transforms)

	all := scene.WorldTransforms(view, reader, transforms)
	require.Len(t, all, 4)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, all[root].Position)
	assertVec3(t, mgl32.Vec3{1, 1, 0}, all[mid].Position)
	assertVec3(t, mgl32.Vec3{1, 1, 1}, all[leaf].Position)
	assertVec3(t, mgl32.Vec3{5, 5, 5}, all[other].Position)

	for e, tr := range all {
		want, err := scene.WorldTransform(reader, transforms, e)
		require.NoError(t, err)
		assertVec3(t, want.Position, tr.Position)
	}
}
