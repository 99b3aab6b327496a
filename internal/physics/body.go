// Package physics mirrors the animated skeleton onto rigid-body proxies.
//
// The skeleton is authoritative: every frame Sync writes each component's
// pose and velocity into the proxy bound to it and never reads back.
package physics

import "github.com/Faultbox/cydsim/pkg/math"

// Body is the write side of a rigid body the simulator drives.
type Body interface {
	SetPosition(p math.Vec3)
	SetRotation(axis math.Vec3, angle float32)
	SetLinearVelocity(v math.Vec3)
	SetAngularVelocity(w math.Vec3)
	Enable()
	Disable()
}

// KinematicBody is an in-memory Body that records what it was told. It backs
// headless runs and is what the viewer draws for loose objects.
type KinematicBody struct {
	Position        math.Vec3
	Axis            math.Vec3
	Angle           float32
	LinearVelocity  math.Vec3
	AngularVelocity math.Vec3
	Extent          math.Vec3 // Full box size
	Disabled        bool
}

// NewKinematicBody returns an enabled body of the given size at p.
func NewKinematicBody(p, extent math.Vec3) *KinematicBody {
	return &KinematicBody{Position: p, Axis: math.Vec3{Z: 1}, Extent: extent}
}

func (b *KinematicBody) SetPosition(p math.Vec3) { b.Position = p }

func (b *KinematicBody) SetRotation(axis math.Vec3, angle float32) {
	b.Axis = axis
	b.Angle = angle
}

func (b *KinematicBody) SetLinearVelocity(v math.Vec3)  { b.LinearVelocity = v }
func (b *KinematicBody) SetAngularVelocity(w math.Vec3) { b.AngularVelocity = w }
func (b *KinematicBody) Enable()                        { b.Disabled = false }
func (b *KinematicBody) Disable()                       { b.Disabled = true }

// Center returns the body's position.
func (b *KinematicBody) Center() math.Vec3 { return b.Position }

// Matrix returns the body's world transform.
func (b *KinematicBody) Matrix() math.Mat4 {
	return math.TranslateVec(b.Position).Mul(math.RotateAxis(b.Axis, b.Angle))
}

// Bounds returns the world-aligned box enclosing the rotated body.
func (b *KinematicBody) Bounds() (lo, hi math.Vec3) {
	m := b.Matrix()
	h := b.Extent.Scale(0.5)
	var half math.Vec3
	for col, e := range [3]float32{h.X, h.Y, h.Z} {
		half.X += abs32(m[col*4]) * e
		half.Y += abs32(m[col*4+1]) * e
		half.Z += abs32(m[col*4+2]) * e
	}
	return b.Position.Sub(half), b.Position.Add(half)
}

func (b *KinematicBody) halfHeight() float32 {
	lo, _ := b.Bounds()
	return b.Position.Z - lo.Z
}

// Integrate advances an enabled body along its linear velocity.
func (b *KinematicBody) Integrate(dt float32) {
	if b.Disabled {
		return
	}
	b.Position = b.Position.Add(b.LinearVelocity.Scale(dt))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
