package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DegenerateSinEpsilon is the smallest |sin(angle/2)| used as a divisor when
// recovering an axis from a quaternion. Below it the divisor is taken as 1
// and the returned axis is arbitrary, which only happens for near-zero angles.
const DegenerateSinEpsilon = 0.0005

// Quat represents a quaternion for 3D rotations: W is the scalar part and V
// the vector part.
type Quat mgl32.Quat

// Mgl returns q as an mgl32 quaternion.
func (q Quat) Mgl() mgl32.Quat {
	return mgl32.Quat(q)
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat(mgl32.QuatIdent())
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	return Quat(mgl32.QuatRotate(angle, axis.Mgl()))
}

// QuatFromMat4 extracts the rotation of the upper-left 3x3 block of m.
// The block is assumed to be orthonormal; translation is ignored.
func QuatFromMat4(m Mat4) Quat {
	return Quat(mgl32.Mat4ToQuat(m.Mgl())).Normalize()
}

// AxisAngle returns the rotation axis and angle (radians) of q.
// When |sin(angle/2)| < DegenerateSinEpsilon the vector part is returned
// undivided; the angle is then close to zero and the axis carries no meaning.
func (q Quat) AxisAngle() (Vec3, float32) {
	q = q.Normalize()
	w := float64(q.W)
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}

	angle := math.Acos(w) * 2
	sina := math.Sqrt(1 - w*w)
	if math.Abs(sina) < DegenerateSinEpsilon {
		sina = 1
	}

	return V3(q.V).Scale(float32(1 / sina)), float32(angle)
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	return Quat(q.Mgl().Normalize())
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.Mgl().Dot(other.Mgl())
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	return Mat4(q.Mgl().Normalize().Mat4())
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return V3(q.Mgl().Rotate(v.Mgl()))
}

// Mul multiplies two quaternions (combines rotations).
// q.Mul(other) applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat(q.Mgl().Mul(other.Mgl()))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return mgl32.DegToRad(deg)
}
