// Package transform provides the per-object affine transform model.
package transform

import (
	"github.com/Faultbox/scenekit/pkg/math"
)

// Applier maps local-space points to output points. Transform, Transform2D and
// ViewportTransform all satisfy it, so mesh builders accept any of them.
type Applier interface {
	Apply(points []math.Vec3) []math.Vec3
}

// Transform is a 3D position/rotation/scale. Rotation is in degrees per axis.
// The zero value has zero scale; use Identity as a starting point.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Identity returns a transform with no translation, no rotation and unit scale.
func Identity() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// FromPosition returns an identity transform moved to (x, y, z).
func FromPosition(x, y, z float32) Transform {
	t := Identity()
	t.Position = math.Vec3{X: x, Y: y, Z: z}
	return t
}

// RotationMatrix returns Ry * Rx * Rz. The Y, X, Z order is fixed no matter
// which angles are set, so results are reproducible across callers.
func (t Transform) RotationMatrix() math.Mat4 {
	return math.RotateY(math.Radians(t.Rotation.Y)).
		Mul(math.RotateX(math.Radians(t.Rotation.X))).
		Mul(math.RotateZ(math.Radians(t.Rotation.Z)))
}

// Matrix returns the model matrix T * (Ry * Rx * Rz) * S.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(t.RotationMatrix()).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// Apply transforms local points to world points.
func (t Transform) Apply(points []math.Vec3) []math.Vec3 {
	m := t.Matrix()
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Combine composes a child transform under its parent.
//
// Position is the translation column of parent.Matrix() * child.Matrix() and
// scale is the component-wise product. Rotation is the per-axis sum of the
// angles, which is exact only for rotation about a single axis. Nested
// multi-axis rotations are approximated.
func Combine(parent, child Transform) Transform {
	m := parent.Matrix().Mul(child.Matrix())
	return Transform{
		Position: m.Translation(),
		Rotation: parent.Rotation.Add(child.Rotation),
		Scale:    parent.Scale.Mul(child.Scale),
	}
}
