// Package math provides the vector, matrix and quaternion types used by the
// skeleton and its physics proxies. The types wrap mgl32 so callers keep
// named fields and the layout OpenGL expects.
package math

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 converts an mgl32 vector.
func V3(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Mgl returns v as an mgl32 vector.
func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v.X, v.Y, v.Z)
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return V3(v.Mgl().Add(other.Mgl()))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return V3(v.Mgl().Sub(other.Mgl()))
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return V3(v.Mgl().Mul(s))
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return v.Scale(-1)
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.Mgl().Dot(other.Mgl())
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return V3(v.Mgl().Cross(other.Mgl()))
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return v.Mgl().Len()
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	if v == (Vec3{}) {
		return Vec3{}
	}
	return V3(v.Mgl().Normalize())
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Axis returns the component for axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3) Axis(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Lerp returns the point t of the way from v to other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}
