package physics

import (
	gomath "math"

	"github.com/Faultbox/cydsim/pkg/math"
)

// Contact is an overlap between two bodies. Normal points from A towards B
// and Depth is how far they interpenetrate along it.
type Contact struct {
	A, B   Handle
	Normal math.Vec3
	Depth  float32
}

// World moves the loose bodies of an arena: gravity, a ground plane at z=0
// and box contacts. Bodies bound by the Sync are driven by the skeleton and
// only act as obstacles.
type World struct {
	Gravity  math.Vec3
	Friction float32

	arena *Arena
	sync  *Sync
}

// NewWorld returns a world over arena. sync may be nil when no skeleton is
// bound.
func NewWorld(arena *Arena, sync *Sync, gravity, friction float32) *World {
	return &World{
		Gravity:  math.Vec3{Z: gravity},
		Friction: friction,
		arena:    arena,
		sync:     sync,
	}
}

type worldBody struct {
	h        Handle
	b        *KinematicBody
	owned    bool
	min, max math.Vec3
}

// Step advances the world by dt seconds and returns the contacts found
// afterwards. resolve decides per contact whether the bodies are pushed
// apart; nil resolves all of them.
func (w *World) Step(dt float32, resolve func(Contact) bool) []Contact {
	var bodies []worldBody
	w.arena.Each(func(h Handle, body Body) {
		kb, ok := body.(*KinematicBody)
		if !ok || kb.Disabled {
			return
		}
		owned := w.sync != nil && w.sync.Owns(h)
		if !owned {
			w.fall(kb, dt)
		}
		bodies = append(bodies, worldBody{h: h, b: kb, owned: owned})
	})

	var contacts []Contact
	for i := range bodies {
		bodies[i].min, bodies[i].max = bodies[i].b.Bounds()
	}
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			a, b := &bodies[i], &bodies[j]
			if w.sync != nil && !w.sync.ShouldCollide(a.h, b.h) {
				continue
			}
			ct, ok := overlap(a, b)
			if !ok {
				continue
			}
			contacts = append(contacts, ct)
			if resolve == nil || resolve(ct) {
				separate(a, b, ct)
				a.min, a.max = a.b.Bounds()
				b.min, b.max = b.b.Bounds()
			}
		}
	}
	return contacts
}

// fall integrates one loose body and keeps it above the ground.
func (w *World) fall(b *KinematicBody, dt float32) {
	b.LinearVelocity = b.LinearVelocity.Add(w.Gravity.Scale(dt))
	b.Integrate(dt)

	bottom := b.Position.Z - b.halfHeight()
	if bottom > 0 {
		return
	}
	b.Position.Z -= bottom
	if b.LinearVelocity.Z < 0 {
		b.LinearVelocity.Z = 0
	}
	keep := 1 - w.Friction*dt
	if keep < 0 {
		keep = 0
	}
	b.LinearVelocity.X *= keep
	b.LinearVelocity.Y *= keep
}

// overlap tests the world boxes of a and b and picks the axis of least
// penetration.
func overlap(a, b *worldBody) (Contact, bool) {
	ct := Contact{A: a.h, B: b.h, Depth: float32(gomath.Inf(1))}
	for axis := 0; axis < 3; axis++ {
		lo := max(a.min.Axis(axis), b.min.Axis(axis))
		hi := min(a.max.Axis(axis), b.max.Axis(axis))
		depth := hi - lo
		if depth <= 0 {
			return Contact{}, false
		}
		if depth < ct.Depth {
			sign := float32(1)
			if b.min.Axis(axis)+b.max.Axis(axis) < a.min.Axis(axis)+a.max.Axis(axis) {
				sign = -1
			}
			ct.Depth = depth
			ct.Normal = unitAxis(axis).Scale(sign)
		}
	}
	return ct, true
}

// separate pushes loose bodies out of the contact and removes their closing
// speed along the normal. Skeleton bodies do not move.
func separate(a, b *worldBody, ct Contact) {
	switch {
	case a.owned:
		push(b.b, ct.Normal, ct.Depth, a.b.LinearVelocity)
	case b.owned:
		push(a.b, ct.Normal.Neg(), ct.Depth, b.b.LinearVelocity)
	default:
		push(a.b, ct.Normal.Neg(), ct.Depth/2, b.b.LinearVelocity)
		push(b.b, ct.Normal, ct.Depth/2, a.b.LinearVelocity)
	}
}

// push moves b by depth along n, which points away from the other body,
// and cancels any speed towards the other body moving at other.
func push(b *KinematicBody, n math.Vec3, depth float32, other math.Vec3) {
	b.Position = b.Position.Add(n.Scale(depth))
	if closing := b.LinearVelocity.Sub(other).Dot(n); closing < 0 {
		b.LinearVelocity = b.LinearVelocity.Sub(n.Scale(closing))
	}
}

func unitAxis(i int) math.Vec3 {
	switch i {
	case 0:
		return math.Vec3{X: 1}
	case 1:
		return math.Vec3{Y: 1}
	default:
		return math.Vec3{Z: 1}
	}
}
