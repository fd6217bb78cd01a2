// Package twod composes 2-D affine transforms over the scene hierarchy.
package twod

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const epsilon = 1.1920929e-07

// Transform is a 2-D affine map: a linear part followed by an offset.
// Use Identity or AddDefault for the identity transform; the zero value
// collapses every point onto Offset.
type Transform struct {
	Linear mgl32.Mat2
	Offset mgl32.Vec2
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Linear: mgl32.Ident2()}
}

// SetDefaults resets t to the identity transform.
func (t *Transform) SetDefaults() {
	*t = Identity()
}

// Rotation returns a counter-clockwise rotation by angle radians.
func Rotation(angle float32) Transform {
	return Transform{Linear: mgl32.Rotate2D(angle)}
}

// Scale returns a scale along each axis.
func Scale(sx, sy float32) Transform {
	return Transform{Linear: mgl32.Mat2{sx, 0, 0, sy}}
}

// Translation returns a pure offset.
func Translation(x, y float32) Transform {
	return Transform{Linear: mgl32.Ident2(), Offset: mgl32.Vec2{x, y}}
}

// Shear returns a shear with x += sx*y and y += sy*x.
func Shear(sx, sy float32) Transform {
	return Transform{Linear: mgl32.Mat2{1, sy, sx, 1}}
}

// Mul returns the transform that applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Linear: t.Linear.Mul2(other.Linear),
		Offset: t.Linear.Mul2x1(other.Offset).Add(t.Offset),
	}
}

// Inverse returns the transform undoing t. It fails when the linear part is
// singular.
func (t Transform) Inverse() (Transform, bool) {
	det := t.Linear.Det()
	if det < epsilon && det > -epsilon {
		return Transform{}, false
	}
	inv := t.Linear.Inv()
	return Transform{Linear: inv, Offset: inv.Mul2x1(t.Offset).Mul(-1)}, true
}

// TransformPoint applies the full transform to a point.
func (t Transform) TransformPoint(p mgl32.Vec2) mgl32.Vec2 {
	return t.Linear.Mul2x1(p).Add(t.Offset)
}

// TransformVector applies the linear part only.
func (t Transform) TransformVector(v mgl32.Vec2) mgl32.Vec2 {
	return t.Linear.Mul2x1(v)
}

// TransformDirection applies the linear part and restores the length of v.
func (t Transform) TransformDirection(v mgl32.Vec2) mgl32.Vec2 {
	out := t.Linear.Mul2x1(v)
	l := out.Len()
	if l < epsilon {
		return mgl32.Vec2{}
	}
	return out.Mul(v.Len() / l)
}

// Angle returns the rotation of the x-axis in radians.
func (t Transform) Angle() float32 {
	x := t.Linear.Col(0)
	return float32(math.Atan2(float64(x.Y()), float64(x.X())))
}

// Mat3 returns the homogeneous matrix of t.
func (t Transform) Mat3() mgl32.Mat3 {
	m := t.Linear
	return mgl32.Mat3{
		m[0], m[1], 0,
		m[2], m[3], 0,
		t.Offset.X(), t.Offset.Y(), 1,
	}
}

type transformYAML struct {
	Linear [4]float32 `yaml:"linear,flow"`
	Offset [2]float32 `yaml:"offset,flow"`
}

// MarshalYAML writes the linear part in row-major order.
func (t Transform) MarshalYAML() (any, error) {
	m := t.Linear
	return transformYAML{
		Linear: [4]float32{m.At(0, 0), m.At(0, 1), m.At(1, 0), m.At(1, 1)},
		Offset: [2]float32(t.Offset),
	}, nil
}

// UnmarshalYAML reads a transform. A missing linear part is the identity.
func (t *Transform) UnmarshalYAML(node *yaml.Node) error {
	raw := transformYAML{Linear: [4]float32{1, 0, 0, 1}}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	l := raw.Linear
	t.Linear = mgl32.Mat2FromRows(mgl32.Vec2{l[0], l[1]}, mgl32.Vec2{l[2], l[3]})
	t.Offset = mgl32.Vec2(raw.Offset)
	return nil
}
