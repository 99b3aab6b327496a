package sim

import (
	"testing"
	"time"

	"github.com/Faultbox/cydsim/internal/anim"
	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/pkg/math"
)

const tolerance = 1e-4

func newContext(t *testing.T) *Context {
	t.Helper()
	c, err := Load(config.Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func approx(a, b float32) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}

func approxVec(a, b math.Vec3) bool {
	return a.Sub(b).Length() < tolerance
}

func rx(c *Context, p rig.Part) float32 {
	return c.Skeleton.Segment(p).Transform.RX
}

func TestLoadDefaults(t *testing.T) {
	c := newContext(t)

	if c.Rate != 3 {
		t.Errorf("Rate = %v, want 3", c.Rate)
	}
	if c.Mode != Collision || c.Current != WholeBody {
		t.Errorf("mode %v part %v, want collision/whole body", c.Mode, c.Current)
	}
	if c.Library.Len() != 4 {
		t.Errorf("library has %d sequences", c.Library.Len())
	}
	if c.Arena.Len() != int(rig.NumComponents) {
		t.Errorf("arena has %d bodies, want one per component", c.Arena.Len())
	}
	if c.Skeleton.Transform.Offset.Z != 0.5 {
		t.Errorf("ground offset = %v", c.Skeleton.Transform.Offset.Z)
	}
}

func TestFrameSyncsProxies(t *testing.T) {
	c := newContext(t)
	r := c.Frame(1)
	if r.Synced != int(rig.NumComponents) || len(r.Skipped) != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestWalkForward(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpWalkForward})

	if got := c.Skeleton.Transform.Translation; !approxVec(got, math.Vec3{Y: -0.03}) {
		t.Errorf("translation = %v, want (0,-0.03,0)", got)
	}
	if c.Skeleton.Speed != 3 {
		t.Errorf("speed = %v, want 3", c.Skeleton.Speed)
	}

	legs := c.Library.Get(anim.LegsWalking)
	arms := c.Library.Get(anim.ArmsWalking)
	if !legs.Active() || !legs.Looped() {
		t.Error("legs-walking not running looped")
	}
	if !arms.Active() || !arms.Looped() {
		t.Error("arms-walking not running looped in collision mode")
	}

	// Walking sequences run at the movement rate.
	c.Frame(1)
	if got := rx(c, rig.UpperRightLeg); got != -3 {
		t.Errorf("upper right leg RX = %v, want -3", got)
	}
	if got := rx(c, rig.LowerLeftLeg); got != 6 {
		t.Errorf("lower left leg RX = %v, want 6", got)
	}
	if got := rx(c, rig.UpperRightArm); got != 3 {
		t.Errorf("upper right arm RX = %v, want 3", got)
	}
}

func TestWalkBackward(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpWalkBackward})

	if got := c.Skeleton.Transform.Translation; !approxVec(got, math.Vec3{Y: 0.03}) {
		t.Errorf("translation = %v, want (0,0.03,0)", got)
	}
	if c.Skeleton.Speed != -3 {
		t.Errorf("speed = %v, want -3", c.Skeleton.Speed)
	}
}

func TestWalkNeedsWholeBody(t *testing.T) {
	c := newContext(t)
	c.Current = rig.Head
	c.Apply(Command{Op: OpWalkForward})
	c.Apply(Command{Op: OpRise})

	if c.Skeleton.Transform.Translation != (math.Vec3{}) {
		t.Errorf("body moved with a part selected: %v", c.Skeleton.Transform.Translation)
	}
	if c.Library.Get(anim.LegsWalking).Active() {
		t.Error("legs-walking started with a part selected")
	}
}

func TestRiseFollowsForward(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpRise})
	if got := c.Skeleton.Transform.Translation; !approxVec(got, math.Vec3{Z: 0.03}) {
		t.Errorf("translation = %v, want (0,0,0.03)", got)
	}
	c.Apply(Command{Op: OpSink})
	if got := c.Skeleton.Transform.Translation; !approxVec(got, math.Vec3{}) {
		t.Errorf("translation = %v after sink, want origin", got)
	}
}

func TestIdleResetsLimbs(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpWalkForward})
	for i := 0; i < 3; i++ {
		c.Frame(1)
	}
	c.Apply(Command{Op: OpIdle})

	if c.Skeleton.Speed != 0 {
		t.Errorf("speed = %v after idle", c.Skeleton.Speed)
	}
	for _, name := range []string{anim.LegsWalking, anim.ArmsWalking} {
		if c.Library.Get(name).Active() {
			t.Errorf("%s still active", name)
		}
	}
	for _, p := range append(append([]rig.Part{}, legParts...), armParts...) {
		if rx(c, p) != 0 {
			t.Errorf("%s RX = %v, want 0", p, rx(c, p))
		}
		if !c.Skeleton.Segment(p).Transform.Matrix().ApproxEqual(math.Identity(), tolerance) {
			t.Errorf("%s not back at rest", p)
		}
	}
}

func TestIdleKeepsSelectionArms(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpToggleMode})
	c.Apply(Command{Op: OpToggleSequence, Index: 1})
	c.Apply(Command{Op: OpIdle})

	if !c.Library.Get(anim.ArmsWalking).Active() {
		t.Error("idle stopped arm sequences in selection mode")
	}
}

func TestRateLimits(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpSlower})
	if !approx(c.Rate, 2.7) {
		t.Errorf("Rate = %v, want 2.7", c.Rate)
	}
	c.Apply(Command{Op: OpFaster})
	if !approx(c.Rate, 2.97) {
		t.Errorf("Rate = %v, want 2.97", c.Rate)
	}

	for i := 0; i < 200 && c.Rate != 0; i++ {
		c.Apply(Command{Op: OpSlower})
	}
	if c.Rate != 0 {
		t.Fatalf("Rate = %v, want floor at 0", c.Rate)
	}
	c.Apply(Command{Op: OpFaster})
	if c.Rate != 0.01 {
		t.Errorf("Rate = %v, want 0.01 after speeding up from 0", c.Rate)
	}
}

func TestNextPartCycles(t *testing.T) {
	c := newContext(t)
	for i := 0; i < rig.NumParts; i++ {
		c.Apply(Command{Op: OpNextPart})
		if c.Current != rig.Part(i) {
			t.Fatalf("step %d: part %v", i, c.Current)
		}
	}
	c.Apply(Command{Op: OpNextPart})
	if c.Current != WholeBody {
		t.Errorf("cycle did not return to whole body: %v", c.Current)
	}
}

func TestRotateMappings(t *testing.T) {
	tests := []struct {
		name  string
		part  rig.Part
		op    Op
		check func(tr *rig.Transform) bool
	}{
		{"torso turn left rolls back", rig.Torso, OpTurnLeft, func(tr *rig.Transform) bool { return tr.RZ == -3 }},
		{"torso tilt down pitches", rig.Torso, OpTiltDown, func(tr *rig.Transform) bool { return tr.RX == 3 }},
		{"head turn right yaws", rig.Head, OpTurnRight, func(tr *rig.Transform) bool { return tr.RY == 3 }},
		{"upper arm turn left rolls", rig.UpperRightArm, OpTurnLeft, func(tr *rig.Transform) bool { return tr.RZ == 3 }},
		{"lower arm twist right yaws", rig.LowerLeftArm, OpTwistRight, func(tr *rig.Transform) bool { return tr.RY == 3 }},
		{"upper leg tilt up", rig.UpperLeftLeg, OpTiltUp, func(tr *rig.Transform) bool { return tr.RX == -3 }},
		{"lower leg tilt up bends", rig.LowerRightLeg, OpTiltUp, func(tr *rig.Transform) bool { return tr.RX == 3 }},
		{"lower leg ignores turns", rig.LowerRightLeg, OpTurnLeft, func(tr *rig.Transform) bool { return tr.RZ == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(t)
			c.Current = tt.part
			c.Apply(Command{Op: tt.op})
			tr := &c.Skeleton.Segment(tt.part).Transform
			if !tt.check(tr) {
				t.Errorf("unexpected state RX=%v RY=%v RZ=%v", tr.RX, tr.RY, tr.RZ)
			}
		})
	}
}

func TestHeadNodTouchesBookkeepingOnly(t *testing.T) {
	c := newContext(t)
	c.Current = rig.Head
	c.Apply(Command{Op: OpTiltUp})

	tr := &c.Skeleton.Segment(rig.Head).Transform
	if tr.RX != -3 {
		t.Errorf("RX = %v, want -3", tr.RX)
	}
	if !tr.Matrix().ApproxEqual(math.Identity(), tolerance) {
		t.Error("head orientation changed")
	}
}

func TestWholeBodyTurn(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpTurnLeft})
	if c.Skeleton.Transform.RZ != 3 {
		t.Errorf("root RZ = %v, want 3", c.Skeleton.Transform.RZ)
	}
	c.Apply(Command{Op: OpTwistLeft})
	if c.Skeleton.Transform.RY != -3 {
		t.Errorf("root RY = %v, want -3", c.Skeleton.Transform.RY)
	}
}

func TestToggleMode(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpWalkForward})

	c.Apply(Command{Op: OpToggleMode})
	if c.Mode != Selection || !c.ShowHands {
		t.Fatalf("mode %v hands %v", c.Mode, c.ShowHands)
	}
	if c.Library.Get(anim.ArmsWalking).Active() {
		t.Error("arms-walking still active in selection mode")
	}
	if !c.Library.Get(anim.ArmsPickup).Active() {
		t.Error("arms-pickup not started")
	}

	crate := c.Arena.Insert(physics.NewKinematicBody(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
	c.Select(crate)

	c.Apply(Command{Op: OpToggleMode})
	if c.Mode != Collision || c.ShowHands {
		t.Fatalf("mode %v hands %v", c.Mode, c.ShowHands)
	}
	if c.Library.Get(anim.ArmsPickup).Active() {
		t.Error("arms-pickup still active")
	}
	if !c.Library.Get(anim.ArmsDown).Active() {
		t.Error("arms-down not started")
	}
	if len(c.Selected()) != 0 {
		t.Error("selection not cleared on leaving selection mode")
	}

	// Arms stay down while walking until arms-down finishes.
	c.Apply(Command{Op: OpWalkForward})
	if c.Library.Get(anim.ArmsWalking).Active() {
		t.Error("arms-walking started while arms-down is running")
	}
}

func TestToggleSequence(t *testing.T) {
	c := newContext(t)
	seq := c.Library.At(2)

	c.Apply(Command{Op: OpToggleSequence, Index: 2})
	if !seq.Active() || !seq.Looped() {
		t.Fatal("toggle did not start a looped sequence")
	}
	c.Apply(Command{Op: OpToggleSequence, Index: 2})
	if !seq.Active() || seq.Looped() {
		t.Error("second toggle should unloop but keep running")
	}

	c.Apply(Command{Op: OpToggleSequence, Index: 9})
}

func TestToggleBoxes(t *testing.T) {
	c := newContext(t)
	c.Apply(Command{Op: OpToggleBoxes})
	if c.ShowBoxes {
		t.Error("boxes still shown")
	}
}

func addCrate(c *Context, at math.Vec3) physics.Handle {
	return c.Arena.Insert(physics.NewKinematicBody(at, math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}))
}

func TestPickupCarryDrop(t *testing.T) {
	c := newContext(t)
	grip := c.GripPoint()
	far := addCrate(c, grip.Add(math.Vec3{X: 2}))
	near := addCrate(c, grip.Add(math.Vec3{Y: -0.2}))
	c.Select(far)
	c.Select(near)

	if c.Pickup() {
		t.Fatal("pickup succeeded in collision mode")
	}

	c.Apply(Command{Op: OpToggleMode})
	c.Skeleton.Segment(rig.Torso).Transform.SetPitch(30)
	c.Apply(Command{Op: OpPickup})

	held, ok := c.Held()
	if !ok || held != near {
		t.Fatalf("held %v %v, want %v", held, ok, near)
	}
	b, _ := c.Arena.Get(near)
	crate := b.(*physics.KinematicBody)
	if !crate.Disabled {
		t.Error("held body still enabled")
	}
	if rx(c, rig.Torso) != 0 {
		t.Errorf("torso RX = %v after grab, want 0", rx(c, rig.Torso))
	}

	c.Apply(Command{Op: OpToggleMode})
	if c.Mode != Selection {
		t.Error("mode changed while holding an object")
	}

	c.Current = rig.UpperRightArm
	c.Apply(Command{Op: OpTiltUp})
	c.Frame(1)
	if !approxVec(crate.Position, c.GripPoint()) {
		t.Errorf("crate at %v, want grip point %v", crate.Position, c.GripPoint())
	}
	axis, angle := physics.PoseFromMatrix(c.Skeleton.WorldMatrix(rig.LowerRightArm))
	if !approxVec(crate.Axis, axis) || !approx(crate.Angle, angle) {
		t.Errorf("crate rotation %v/%v, want %v/%v", crate.Axis, crate.Angle, axis, angle)
	}

	c.Apply(Command{Op: OpDrop})
	if _, ok := c.Held(); ok {
		t.Error("still holding after drop")
	}
	if crate.Disabled {
		t.Error("dropped body still disabled")
	}
	if rx(c, rig.Torso) != 45 {
		t.Errorf("torso RX = %v after drop, want 45", rx(c, rig.Torso))
	}
}

func TestCarryDropsVanishedObject(t *testing.T) {
	c := newContext(t)
	crate := addCrate(c, c.GripPoint())
	if !c.Grab(crate) {
		t.Fatal("Grab failed")
	}
	c.Arena.Remove(crate)

	c.Frame(1)
	if _, ok := c.Held(); ok {
		t.Error("context still holds a removed body")
	}
}

func TestGrabRejects(t *testing.T) {
	c := newContext(t)
	own := c.Sync.Records()[0].Handle
	if c.Grab(own) {
		t.Error("grabbed one of the skeleton's own bodies")
	}
	if c.Grab(physics.Handle{Index: 99, Gen: 1}) {
		t.Error("grabbed an unknown handle")
	}

	a := addCrate(c, math.Vec3{})
	b := addCrate(c, math.Vec3{X: 1})
	c.Grab(a)
	if c.Grab(b) {
		t.Error("grabbed a second object")
	}
}

func TestSelectNearest(t *testing.T) {
	c := newContext(t)
	grip := c.GripPoint()
	addCrate(c, grip.Add(math.Vec3{Z: 1}))
	near := addCrate(c, grip.Add(math.Vec3{Z: 0.1}))

	c.Apply(Command{Op: OpSelectNearest})
	if sel := c.Selected(); len(sel) != 1 || sel[0] != near {
		t.Errorf("selected %v, want [%v]", sel, near)
	}
	c.Select(c.Sync.Records()[0].Handle)
	if len(c.Selected()) != 1 {
		t.Error("skeleton body was selectable")
	}
}

func TestFrameRateSpeedFactor(t *testing.T) {
	f := NewFrameRate(60)
	if f.SpeedFactor() != 1 {
		t.Fatalf("initial speed factor = %v", f.SpeedFactor())
	}

	now := time.Unix(0, 0)
	f.Update(now)
	// The window closes on the first frame at or past one second.
	step := time.Second / 30
	for i := 0; i < 31; i++ {
		now = now.Add(step)
		f.Update(now)
	}
	if got := f.SpeedFactor(); !approx(got, 0.5) {
		t.Errorf("speed factor at 30 fps = %v, want 0.5", got)
	}

	step = time.Second / 120
	for i := 0; i < 121; i++ {
		now = now.Add(step)
		f.Update(now)
	}
	if got := f.SpeedFactor(); got < 1.99 || got > 2.01 {
		t.Errorf("speed factor at 120 fps = %v, want 2", got)
	}
}

func TestPose(t *testing.T) {
	c := newContext(t)
	c.Skeleton.Transform.Translate(math.Vec3{X: 1})
	c.Frame(1)

	poses := c.Pose()
	if len(poses) != rig.NumParts {
		t.Fatalf("got %d poses", len(poses))
	}
	torso := c.Skeleton.Segment(rig.Torso)
	want := torso.World().TransformPoint(torso.Pivot())
	if !approxVec(poses[rig.Torso].Position, want) {
		t.Errorf("torso at %v, want %v", poses[rig.Torso].Position, want)
	}
	if poses[rig.Torso].Position.X < 1-tolerance {
		t.Errorf("torso did not follow the root: %v", poses[rig.Torso].Position)
	}
	for _, p := range poses {
		if !approx(p.Angle, 0) {
			t.Errorf("%s rotated at rest: %v", p.Part, p.Angle)
		}
	}
}

func TestReleasedObjectFalls(t *testing.T) {
	c := newContext(t)
	h := addCrate(c, c.GripPoint())
	if !c.Grab(h) {
		t.Fatal("Grab failed")
	}
	c.Mode = Selection
	c.Frame(1)
	b, _ := c.Arena.Get(h)
	crate := b.(*physics.KinematicBody)

	c.Apply(Command{Op: OpDrop})
	start := crate.Position
	for i := 0; i < 120; i++ {
		c.Frame(1)
	}

	if crate.Disabled {
		t.Fatal("dropped body disabled")
	}
	if crate.Position.Z > start.Z-0.3 {
		t.Errorf("crate at z=%v after release from z=%v, want it on the ground", crate.Position.Z, start.Z)
	}
	if lo, _ := crate.Bounds(); !approx(lo.Z, 0) {
		t.Errorf("crate bottom at z=%v, want resting on the ground", lo.Z)
	}
	if crate.LinearVelocity.Z != 0 {
		t.Errorf("resting crate still falling at %v", crate.LinearVelocity.Z)
	}
}

func TestCollisionModePushesObjects(t *testing.T) {
	c := newContext(t)
	c.Frame(1)
	torso := c.Skeleton.ComponentCenter(rig.TorsoBox)
	h := addCrate(c, torso.Add(math.Vec3{Y: -0.12}))
	b, _ := c.Arena.Get(h)
	crate := b.(*physics.KinematicBody)

	c.Frame(1)
	if crate.Position.Y > torso.Y-0.15+tolerance {
		t.Errorf("crate y = %v, want pushed clear of the torso front to %v", crate.Position.Y, torso.Y-0.15)
	}
	if len(c.Selected()) != 0 {
		t.Errorf("contact selected %v in collision mode", c.Selected())
	}
}

func TestHandContactSelects(t *testing.T) {
	c := newContext(t)
	c.Mode = Selection
	c.Frame(1)
	hand := c.Skeleton.ComponentCenter(rig.RightHandBox)
	h := addCrate(c, hand)
	b, _ := c.Arena.Get(h)
	crate := b.(*physics.KinematicBody)

	c.Frame(1)
	if sel := c.Selected(); len(sel) != 1 || sel[0] != h {
		t.Fatalf("selected %v, want [%v]", sel, h)
	}
	if crate.Position.X != hand.X || crate.Position.Y != hand.Y {
		t.Errorf("crate pushed to %v in selection mode", crate.Position)
	}

	c.Grab(h)
	other := addCrate(c, hand)
	c.Frame(1)
	for _, s := range c.Selected() {
		if s == other {
			t.Error("selected by contact while holding")
		}
	}
}

func TestClearSelectionKeepsReturnedSlice(t *testing.T) {
	c := newContext(t)
	a := addCrate(c, math.Vec3{X: 1})
	b := addCrate(c, math.Vec3{X: 2})
	c.Select(a)
	sel := c.Selected()

	c.ClearSelection()
	c.Select(b)
	if sel[0] != a {
		t.Errorf("earlier selection rewritten to %v", sel[0])
	}
	if got := c.Selected(); len(got) != 1 || got[0] != b {
		t.Errorf("selected %v, want [%v]", got, b)
	}
}
