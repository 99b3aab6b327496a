package sim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/anim"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/rig"
)

// Op is a user action.
type Op int

const (
	OpNone Op = iota

	// Rotations of the current part (or the whole body).
	OpTurnLeft
	OpTurnRight
	OpTiltUp
	OpTiltDown
	OpTwistLeft
	OpTwistRight

	// Whole-body movement.
	OpWalkForward
	OpWalkBackward
	OpRise
	OpSink
	OpIdle // no walk key held this frame

	OpNextPart
	OpSlower
	OpFaster
	OpToggleMode
	OpSelectNearest
	OpPickup
	OpDrop
	OpToggleBoxes
	OpToggleSequence
)

var opNames = map[Op]string{
	OpNone: "none", OpTurnLeft: "turn-left", OpTurnRight: "turn-right",
	OpTiltUp: "tilt-up", OpTiltDown: "tilt-down", OpTwistLeft: "twist-left",
	OpTwistRight: "twist-right", OpWalkForward: "walk-forward",
	OpWalkBackward: "walk-backward", OpRise: "rise", OpSink: "sink",
	OpIdle: "idle", OpNextPart: "next-part", OpSlower: "slower",
	OpFaster: "faster", OpToggleMode: "toggle-mode",
	OpSelectNearest: "select-nearest", OpPickup: "pickup", OpDrop: "drop",
	OpToggleBoxes: "toggle-boxes", OpToggleSequence: "toggle-sequence",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "op(?)"
}

// Command is one action. Index selects the sequence for OpToggleSequence.
type Command struct {
	Op    Op
	Index int
}

// Apply executes cmd against the context.
func (c *Context) Apply(cmd Command) {
	switch cmd.Op {
	case OpTurnLeft, OpTurnRight, OpTiltUp, OpTiltDown, OpTwistLeft, OpTwistRight:
		c.rotate(cmd.Op)
	case OpWalkForward:
		c.walk(1)
	case OpWalkBackward:
		c.walk(-1)
	case OpRise:
		c.rise(1)
	case OpSink:
		c.rise(-1)
	case OpIdle:
		c.idle()
	case OpNextPart:
		c.Current = (c.Current + 1) % (rig.NumParts + 1)
		logger.Info("part selected", zap.String("part", c.partName()))
	case OpSlower:
		c.Rate -= c.Rate * 0.1
		if c.Rate < 0.01 {
			c.Rate = 0
		}
		logger.Info("movement rate", zap.Float32("rate", c.Rate))
	case OpFaster:
		c.Rate += c.Rate * 0.1
		if c.Rate <= 0 {
			c.Rate = 0.01
		}
		logger.Info("movement rate", zap.Float32("rate", c.Rate))
	case OpToggleMode:
		c.toggleMode()
	case OpSelectNearest:
		c.selectNearest()
	case OpPickup:
		c.Pickup()
	case OpDrop:
		c.Release()
	case OpToggleBoxes:
		c.ShowBoxes = !c.ShowBoxes
	case OpToggleSequence:
		c.toggleSequence(cmd.Index)
	}
}

func (c *Context) partName() string {
	if c.Current == WholeBody {
		return "body"
	}
	return c.Current.String()
}

// rotate turns the current part. Each joint group maps the keys to the axis
// that reads naturally for it.
func (c *Context) rotate(op Op) {
	d := c.cfg.AngularDeltaScale * c.Rate

	if c.Current == WholeBody {
		rotateLimb(&c.Skeleton.Transform, op, d)
		return
	}

	tr := &c.Skeleton.Segment(c.Current).Transform
	switch c.Current {
	case rig.Torso:
		switch op {
		case OpTurnLeft:
			tr.AddRoll(-d)
		case OpTurnRight:
			tr.AddRoll(d)
		case OpTiltUp:
			tr.AddPitch(-d)
		case OpTiltDown:
			tr.AddPitch(d)
		case OpTwistLeft:
			tr.AddYaw(-d)
		case OpTwistRight:
			tr.AddYaw(d)
		}
	case rig.Head:
		// Nodding only moves the pitch bookkeeping, so animations can
		// still drive the head back.
		switch op {
		case OpTurnLeft:
			tr.AddYaw(-d)
		case OpTurnRight:
			tr.AddYaw(d)
		case OpTiltUp:
			tr.RX -= d
		case OpTiltDown:
			tr.RX += d
		}
	case rig.LowerRightLeg, rig.LowerLeftLeg:
		switch op {
		case OpTiltUp:
			tr.AddPitch(d)
		case OpTiltDown:
			tr.AddPitch(-d)
		}
	default:
		rotateLimb(tr, op, d)
	}
}

func rotateLimb(tr *rig.Transform, op Op, d float32) {
	switch op {
	case OpTurnLeft:
		tr.AddRoll(d)
	case OpTurnRight:
		tr.AddRoll(-d)
	case OpTiltUp:
		tr.AddPitch(-d)
	case OpTiltDown:
		tr.AddPitch(d)
	case OpTwistLeft:
		tr.AddYaw(-d)
	case OpTwistRight:
		tr.AddYaw(d)
	}
}

// walk moves the body one step along its heading and keeps the walking
// sequences running. dir is 1 for forward and -1 for backward.
func (c *Context) walk(dir float32) {
	if c.Current != WholeBody {
		return
	}
	skel := c.Skeleton
	skel.Transform.Translate(skel.Heading().Scale(dir * c.cfg.LinearDeltaScale * c.Rate))
	skel.Speed = dir * c.Rate * c.cfg.LinearSpeedScale

	startLooped(c.sequence(anim.LegsWalking))
	if c.Mode == Collision && !active(c.sequence(anim.ArmsDown)) {
		startLooped(c.sequence(anim.ArmsWalking))
	}
}

func (c *Context) rise(dir float32) {
	if c.Current != WholeBody {
		return
	}
	skel := c.Skeleton
	skel.Transform.Translate(skel.Forward().Scale(dir * c.cfg.LinearDeltaScale * c.Rate))
}

var (
	legParts = []rig.Part{rig.UpperRightLeg, rig.LowerRightLeg, rig.UpperLeftLeg, rig.LowerLeftLeg}
	armParts = []rig.Part{rig.UpperRightArm, rig.LowerRightArm, rig.UpperLeftArm, rig.LowerLeftArm}
)

// idle stops the body and snaps the swinging limbs back to rest.
func (c *Context) idle() {
	c.Skeleton.Speed = 0

	if legs := c.sequence(anim.LegsWalking); active(legs) {
		halt(legs)
		c.zeroPitch(legParts)
	}
	if arms := c.sequence(anim.ArmsWalking); c.Mode == Collision && active(arms) {
		halt(arms)
		c.zeroPitch(armParts)
	}
}

func (c *Context) zeroPitch(parts []rig.Part) {
	for _, p := range parts {
		c.Skeleton.Segment(p).Transform.SetPitch(0)
	}
}

func (c *Context) toggleMode() {
	if c.held.Valid() {
		return
	}

	walking := c.sequence(anim.ArmsWalking)
	pickup := c.sequence(anim.ArmsPickup)
	down := c.sequence(anim.ArmsDown)

	if c.Mode == Collision {
		c.Mode = Selection
		c.ShowHands = true
		halt(walking)
		halt(down)
		start(pickup)
	} else {
		c.Mode = Collision
		c.ClearSelection()
		c.ShowHands = false
		halt(walking)
		halt(pickup)
		start(down)
	}
	logger.Info("interaction mode", zap.Stringer("mode", c.Mode))
}

func (c *Context) toggleSequence(i int) {
	seq := c.Library.At(i)
	if seq == nil {
		return
	}
	if !seq.Active() {
		seq.Loop()
		seq.Start()
	} else {
		seq.Unloop()
	}
}
