package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const epsilon = 1.1920929e-07

// Transform stores the position, rotation and uniform scale of an entity
// relative to its parent. It uses a left handed, y-up coordinate system.
// Use NewTransform or AddDefault for an identity transform; the zero value
// has zero scale.
type Transform struct {
	Scale    float32
	Rotation mgl32.Quat
	Position mgl32.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: 1, Rotation: mgl32.QuatIdent()}
}

// SetDefaults resets t to the identity transform.
func (t *Transform) SetDefaults() {
	*t = NewTransform()
}

// Concat returns the transform that applies child first, then t.
func (t Transform) Concat(child Transform) Transform {
	return Transform{
		Scale:    t.Scale * child.Scale,
		Rotation: t.Rotation.Mul(child.Rotation),
		Position: t.Rotation.Rotate(child.Position.Mul(t.Scale)).Add(t.Position),
	}
}

// Inverse returns the transform undoing t. It fails for a zero scale.
func (t Transform) Inverse() (Transform, bool) {
	if t.Scale < epsilon && t.Scale > -epsilon {
		return Transform{}, false
	}
	scale := 1 / t.Scale
	rot := t.Rotation.Inverse()
	return Transform{
		Scale:    scale,
		Rotation: rot,
		Position: rot.Rotate(t.Position.Mul(-scale)),
	}, true
}

// Matrix returns T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}

// Translate moves the transform by disp in parent space.
func (t *Transform) Translate(disp mgl32.Vec3) {
	t.Position = t.Position.Add(disp)
}

// Rotate applies rot after the current rotation.
func (t *Transform) Rotate(rot mgl32.Quat) {
	t.Rotation = rot.Mul(t.Rotation)
}

// TransformPoint maps a point through scale, rotation and translation.
func (t Transform) TransformPoint(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(v.Mul(t.Scale)).Add(t.Position)
}

// TransformVector maps a vector through scale and rotation. The result may
// have a different length than v.
func (t Transform) TransformVector(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(v.Mul(t.Scale))
}

// TransformDirection maps a direction through rotation only.
func (t Transform) TransformDirection(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(v)
}

// Up is the positive y-axis after rotation.
func (t Transform) Up() mgl32.Vec3 {
	return t.TransformDirection(mgl32.Vec3{0, 1, 0})
}

// Forward is the positive z-axis after rotation.
func (t Transform) Forward() mgl32.Vec3 {
	return t.TransformDirection(mgl32.Vec3{0, 0, 1})
}

// Right is the positive x-axis after rotation.
func (t Transform) Right() mgl32.Vec3 {
	return t.TransformDirection(mgl32.Vec3{1, 0, 0})
}

// LookRotation returns the rotation whose forward axis points along dir.
func LookRotation(dir, up mgl32.Vec3) mgl32.Quat {
	dir = dir.Normalize()
	side := up.Cross(dir).Normalize()
	up = dir.Cross(side).Normalize()
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(side, up, dir).Mat4())
}

type transformYAML struct {
	Position [3]float32 `yaml:"position,flow"`
	Rotation [4]float32 `yaml:"rotation,flow"`
	Scale    float32    `yaml:"scale"`
}

// MarshalYAML writes the rotation as [w, x, y, z].
func (t Transform) MarshalYAML() (any, error) {
	return transformYAML{
		Position: [3]float32(t.Position),
		Rotation: [4]float32{t.Rotation.W, t.Rotation.V.X(), t.Rotation.V.Y(), t.Rotation.V.Z()},
		Scale:    t.Scale,
	}, nil
}

// UnmarshalYAML reads a transform. Missing fields keep their identity values.
func (t *Transform) UnmarshalYAML(node *yaml.Node) error {
	raw := transformYAML{
		Rotation: [4]float32{1, 0, 0, 0},
		Scale:    1,
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t.Position = mgl32.Vec3(raw.Position)
	t.Rotation = mgl32.Quat{W: raw.Rotation[0], V: mgl32.Vec3{raw.Rotation[1], raw.Rotation[2], raw.Rotation[3]}}
	t.Scale = raw.Scale
	return nil
}
