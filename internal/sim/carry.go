package sim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/pkg/math"
)

// Locator is implemented by bodies that can report where they are.
type Locator interface {
	Center() math.Vec3
}

// GripPoint returns where a carried object sits: midway between the hand
// boxes, in the right hand's frame.
func (c *Context) GripPoint() math.Vec3 {
	return c.gripMatrix().TransformPoint(c.gripLocal())
}

func (c *Context) gripMatrix() math.Mat4 {
	return c.Skeleton.WorldMatrix(c.Skeleton.PartOf(rig.RightHandBox))
}

func (c *Context) gripLocal() math.Vec3 {
	b := &c.Skeleton.Model().Bounds
	return b[rig.RightHandBox].Center().Lerp(b[rig.LeftHandBox].Center(), 0.5)
}

// Grab takes hold of h. The body is disabled so the physics world stops
// moving it, and the torso straightens up. It reports false if h does not
// resolve or something is already held.
func (c *Context) Grab(h physics.Handle) bool {
	if c.held.Valid() || c.Sync.Owns(h) {
		return false
	}
	body, ok := c.Arena.Get(h)
	if !ok {
		return false
	}
	c.held = h
	body.Disable()
	c.Skeleton.Segment(rig.Torso).Transform.SetPitch(0)
	logger.Info("object grabbed", zap.Stringer("handle", h))
	return true
}

// Release lets go of the held object and leans the torso forward again.
func (c *Context) Release() {
	if !c.held.Valid() {
		return
	}
	if body, ok := c.Arena.Get(c.held); ok {
		body.Enable()
	}
	c.Skeleton.Segment(rig.Torso).Transform.SetPitch(45)
	logger.Info("object released", zap.Stringer("handle", c.held))
	c.held = physics.NoHandle
}

// Pickup grabs the selected object nearest the grip point. It only works in
// selection mode with empty hands.
func (c *Context) Pickup() bool {
	if c.held.Valid() || c.Mode != Selection {
		return false
	}
	best, ok := c.nearest(c.selected)
	if !ok {
		return false
	}
	return c.Grab(best)
}

// selectNearest adds the loose body closest to the grip point to the
// selection.
func (c *Context) selectNearest() {
	var loose []physics.Handle
	c.Arena.Each(func(h physics.Handle, _ physics.Body) {
		if !c.Sync.Owns(h) && h != c.held {
			loose = append(loose, h)
		}
	})
	if h, ok := c.nearest(loose); ok {
		c.Select(h)
		logger.Info("object selected", zap.Stringer("handle", h))
	}
}

func (c *Context) nearest(handles []physics.Handle) (physics.Handle, bool) {
	target := c.GripPoint()

	var (
		best     physics.Handle
		bestDist float32
		found    bool
	)
	for _, h := range handles {
		body, ok := c.Arena.Get(h)
		if !ok {
			continue
		}
		loc, ok := body.(Locator)
		if !ok {
			continue
		}
		d := target.Distance(loc.Center())
		if !found || d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

// carry poses the held object in the hands. A held body that has vanished
// is dropped silently.
func (c *Context) carry() {
	if !c.held.Valid() {
		return
	}
	body, ok := c.Arena.Get(c.held)
	if !ok {
		logger.Debug("held object gone", zap.Stringer("handle", c.held))
		c.held = physics.NoHandle
		return
	}

	m := c.gripMatrix()
	axis, angle := physics.PoseFromMatrix(m)
	body.SetRotation(axis, angle)
	body.SetPosition(m.TransformPoint(c.gripLocal()))
}

// contact decides how the world handles an overlap. In selection mode the
// skeleton passes through objects and a hand touching one selects it.
func (c *Context) contact(ct physics.Contact) bool {
	ownA, ownB := c.Sync.Owns(ct.A), c.Sync.Owns(ct.B)
	if c.Mode != Selection || !(ownA || ownB) {
		return true
	}
	if c.held.Valid() {
		return false
	}
	own, other := ct.A, ct.B
	if ownB {
		own, other = ct.B, ct.A
	}
	if comp, _ := c.Sync.Component(own); comp == rig.RightHandBox || comp == rig.LeftHandBox {
		c.Select(other)
	}
	return false
}
