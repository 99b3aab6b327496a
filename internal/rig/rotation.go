package rig

import "github.com/Faultbox/cydsim/pkg/math"

// RotationState accumulates single-axis rotations into one orientation.
//
// The accumulated quaternion is the source of truth for Matrix. RX, RY and RZ
// record the net pitch, yaw and roll (degrees) requested by callers and are
// what animation targets converge against; they are never used to rebuild
// the orientation.
type RotationState struct {
	RX, RY, RZ float32

	q math.Quat

	// Staged single-axis deltas, consumed by update.
	pitch, yaw, roll float32
}

// NewRotationState returns a state with no rotation.
func NewRotationState() RotationState {
	return RotationState{q: math.QuatIdentity()}
}

// AddPitch rotates about the local X axis. The stage holds the negated
// angle, so a positive pitch tips the local Y axis toward -Z.
func (r *RotationState) AddPitch(deg float32) {
	r.pitch = -deg
	r.update()
	r.pitch = 0
	r.RX += deg
}

// AddYaw rotates about the local Y axis.
func (r *RotationState) AddYaw(deg float32) {
	r.yaw = deg
	r.update()
	r.yaw = 0
	r.RY += deg
}

// AddRoll rotates about the local Z axis.
func (r *RotationState) AddRoll(deg float32) {
	r.roll = deg
	r.update()
	r.roll = 0
	r.RZ += deg
}

// SetPitch clears the accumulated orientation, zeroes RX and applies deg.
func (r *RotationState) SetPitch(deg float32) {
	r.clear()
	r.RX = 0
	r.AddPitch(deg)
}

// SetYaw clears the accumulated orientation, zeroes RY and applies deg.
func (r *RotationState) SetYaw(deg float32) {
	r.clear()
	r.RY = 0
	r.AddYaw(deg)
}

// SetRoll clears the accumulated orientation, zeroes RZ and applies deg.
func (r *RotationState) SetRoll(deg float32) {
	r.clear()
	r.RZ = 0
	r.AddRoll(deg)
}

// Quat returns the accumulated orientation.
func (r *RotationState) Quat() math.Quat {
	if r.q == (math.Quat{}) {
		return math.QuatIdentity()
	}
	return r.q
}

// Matrix returns the accumulated orientation as a rotation matrix.
func (r *RotationState) Matrix() math.Mat4 {
	return r.Quat().ToMat4()
}

// Right returns the local +X axis in the parent frame.
func (r *RotationState) Right() math.Vec3 {
	return r.Quat().Rotate(math.Vec3{X: 1})
}

// Up returns the local +Y axis in the parent frame.
func (r *RotationState) Up() math.Vec3 {
	return r.Quat().Rotate(math.Vec3{Y: 1})
}

// Forward returns the local +Z axis in the parent frame.
func (r *RotationState) Forward() math.Vec3 {
	return r.Quat().Rotate(math.Vec3{Z: 1})
}

// update folds the staged deltas into the orientation. Increments are
// applied in the local frame (right-multiplied).
func (r *RotationState) update() {
	dq := math.QuatFromAxisAngle(math.Vec3{X: 1}, math.Radians(r.pitch)).
		Mul(math.QuatFromAxisAngle(math.Vec3{Y: 1}, math.Radians(r.yaw))).
		Mul(math.QuatFromAxisAngle(math.Vec3{Z: 1}, math.Radians(r.roll)))
	r.q = r.Quat().Mul(dq).Normalize()
}

func (r *RotationState) clear() {
	r.q = math.QuatIdentity()
	r.pitch, r.yaw, r.roll = 0, 0, 0
}
