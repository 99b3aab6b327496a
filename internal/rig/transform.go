package rig

import "github.com/Faultbox/cydsim/pkg/math"

// Transform is the pose of one segment or of the whole body.
// Offset is fixed at construction; Translation is written by animation and
// input. Magnitudes are not validated here.
type Transform struct {
	Offset      math.Vec3
	Translation math.Vec3
	Scale       math.Vec3

	RotationState
}

// NewTransform returns an identity transform with unit scale.
func NewTransform() Transform {
	return Transform{
		Scale:         math.Vec3{X: 1, Y: 1, Z: 1},
		RotationState: NewRotationState(),
	}
}

// Position returns Offset + Translation.
func (t *Transform) Position() math.Vec3 {
	return t.Offset.Add(t.Translation)
}

// Translate adds d to the animated translation.
func (t *Transform) Translate(d math.Vec3) {
	t.Translation = t.Translation.Add(d)
}

// Local returns T(position) * R * S.
func (t *Transform) Local() math.Mat4 {
	return math.TranslateVec(t.Position()).
		Mul(t.Matrix()).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}
