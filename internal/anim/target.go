// Package anim drives skeleton segments toward scripted poses.
//
// A Target moves one segment toward a goal on up to six channels at a
// bounded speed. A Cluster steps a set of targets together and completes
// when all of them have arrived. A Sequence plays clusters one after another,
// optionally looping.
package anim

import (
	"github.com/Faultbox/cydsim/internal/rig"
)

// Channel is one independently animated degree of freedom.
type Channel int

// Channels. Rotation channels are pitch, yaw and roll in degrees.
const (
	TX Channel = iota
	TY
	TZ
	RX
	RY
	RZ

	NumChannels = 6
)

var channelNames = [NumChannels]string{"x", "y", "z", "pitch", "yaw", "roll"}

func (c Channel) String() string {
	if c >= 0 && c < NumChannels {
		return channelNames[c]
	}
	return "channel(?)"
}

// Goal is a target value and the maximum change per unit speed factor.
// A zero Speed leaves the channel unanimated.
type Goal struct {
	Value float32
	Speed float32
}

// Target binds one segment to a goal pose.
type Target struct {
	Part  rig.Part
	Goals [NumChannels]Goal

	skel *rig.Skeleton
}

// Step moves the segment one increment toward its goals and reports whether
// every animated channel was already at its goal. The segment is mutated on
// every call that is not an arrival.
func (t *Target) Step(speedFactor float32) bool {
	seg := t.skel.Segment(t.Part)
	tr := &seg.Transform
	forward := t.skel.Forward()

	done := true
	for ch := Channel(0); ch < NumChannels; ch++ {
		g := t.Goals[ch]
		if g.Speed <= 0 {
			continue
		}

		delta := g.Value - current(tr, ch)
		if delta == 0 {
			continue
		}
		done = false

		speed := speedFactor * g.Speed
		if speed < 0 {
			speed = 0
		}
		if delta > speed {
			delta = speed
		} else if delta < -speed {
			delta = -speed
		}

		switch ch {
		// Translation goals ride on the body's forward axis.
		case TX:
			tr.Translation.X += forward.X + delta
		case TY:
			tr.Translation.Y += forward.Y + delta
		case TZ:
			tr.Translation.Z += forward.Z + delta
		case RX:
			tr.AddPitch(delta)
		case RY:
			tr.AddYaw(delta)
		case RZ:
			tr.AddRoll(delta)
		}
	}
	return done
}

func current(tr *rig.Transform, ch Channel) float32 {
	switch ch {
	case TX:
		return tr.Translation.X
	case TY:
		return tr.Translation.Y
	case TZ:
		return tr.Translation.Z
	case RX:
		return tr.RX
	case RY:
		return tr.RY
	default:
		return tr.RZ
	}
}

// Cluster is a set of targets stepped in the same frame.
type Cluster struct {
	Targets []Target
}

// Step advances every member and reports whether all of them had arrived.
// Members are never skipped, so arrived members keep being held at their
// goal while slower ones catch up.
func (c *Cluster) Step(speedFactor float32) bool {
	done := true
	for i := range c.Targets {
		if !c.Targets[i].Step(speedFactor) {
			done = false
		}
	}
	return done
}
