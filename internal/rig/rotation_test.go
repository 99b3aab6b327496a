package rig

import (
	"testing"

	"github.com/Faultbox/cydsim/pkg/math"
)

const tolerance = 1e-4

func TestAddThenUndoRestoresOrientation(t *testing.T) {
	axes := []struct {
		name string
		add  func(r *RotationState, deg float32)
		get  func(r *RotationState) float32
	}{
		{"pitch", (*RotationState).AddPitch, func(r *RotationState) float32 { return r.RX }},
		{"yaw", (*RotationState).AddYaw, func(r *RotationState) float32 { return r.RY }},
		{"roll", (*RotationState).AddRoll, func(r *RotationState) float32 { return r.RZ }},
	}

	for _, axis := range axes {
		t.Run(axis.name, func(t *testing.T) {
			r := NewRotationState()
			// Start from an arbitrary orientation.
			r.AddPitch(12)
			r.AddYaw(-30)
			r.AddRoll(7)

			before := r.Matrix()
			scalar := axis.get(&r)

			axis.add(&r, 25)
			if r.Matrix().ApproxEqual(before, tolerance) {
				t.Fatal("adding 25 degrees did not change the orientation")
			}
			axis.add(&r, -25)

			if !r.Matrix().ApproxEqual(before, tolerance) {
				t.Errorf("orientation not restored: got %v, want %v", r.Matrix(), before)
			}
			if got := axis.get(&r); got != scalar {
				t.Errorf("bookkeeping scalar = %v, want %v", got, scalar)
			}
		})
	}
}

func TestSetYawIsResetThenAdd(t *testing.T) {
	fresh := NewRotationState()
	fresh.AddYaw(40)

	for _, history := range [][]float32{nil, {10}, {-90, 33, 5}, {360, 1}} {
		r := NewRotationState()
		for _, d := range history {
			r.AddYaw(d)
		}
		r.SetYaw(40)

		if !r.Matrix().ApproxEqual(fresh.Matrix(), tolerance) {
			t.Errorf("history %v: SetYaw(40) = %v, want %v", history, r.Matrix(), fresh.Matrix())
		}
		if r.RY != 40 {
			t.Errorf("history %v: RY = %v, want 40", history, r.RY)
		}
	}
}

func TestSetPitchClearsOtherAxes(t *testing.T) {
	r := NewRotationState()
	r.AddRoll(30)
	r.SetPitch(15)

	want := NewRotationState()
	want.AddPitch(15)
	if !r.Matrix().ApproxEqual(want.Matrix(), tolerance) {
		t.Errorf("SetPitch should discard earlier roll: got %v, want %v", r.Matrix(), want.Matrix())
	}
	// Bookkeeping for the untouched axis is left alone.
	if r.RZ != 30 {
		t.Errorf("RZ = %v, want 30", r.RZ)
	}
}

func TestRotationOrderMatters(t *testing.T) {
	a := NewRotationState()
	a.AddPitch(90)
	a.AddYaw(90)

	b := NewRotationState()
	b.AddYaw(90)
	b.AddPitch(90)

	if a.Matrix().ApproxEqual(b.Matrix(), tolerance) {
		t.Error("pitch-then-yaw should differ from yaw-then-pitch")
	}
	if a.RX != b.RX || a.RY != b.RY {
		t.Error("bookkeeping scalars should match regardless of order")
	}
}

func TestPitchTipsUpTowardMinusZ(t *testing.T) {
	r := NewRotationState()
	r.AddPitch(90)

	up := r.Up()
	if abs(up.X) > tolerance || abs(up.Y) > tolerance || abs(up.Z+1) > tolerance {
		t.Errorf("Up after pitch 90 = %v, want (0, 0, -1)", up)
	}
}

func TestZeroValueRotationStateIsIdentity(t *testing.T) {
	var r RotationState
	if !r.Matrix().ApproxEqual(math.Identity(), 0) {
		t.Errorf("zero value matrix = %v, want identity", r.Matrix())
	}
	r.AddRoll(10)
	want := NewRotationState()
	want.AddRoll(10)
	if !r.Matrix().ApproxEqual(want.Matrix(), tolerance) {
		t.Errorf("zero value AddRoll = %v, want %v", r.Matrix(), want.Matrix())
	}
}

func TestTransformLocal(t *testing.T) {
	tr := NewTransform()
	tr.Offset = math.Vec3{Z: 0.5}
	tr.Translate(math.Vec3{X: 1})
	tr.Scale = math.Vec3{X: 2, Y: 2, Z: 2}

	got := tr.Local().TransformPoint(math.Vec3{X: 1})
	want := math.Vec3{X: 3, Z: 0.5}
	if got.Distance(want) > tolerance {
		t.Errorf("Local() applied to (1,0,0) = %v, want %v", got, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
