// Package scene turns simulator state into colored line geometry. It has no
// graphics dependencies so the geometry can be checked without a display.
package scene

import (
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/pkg/math"
)

// Color is linear RGB.
type Color [3]float32

// Palette.
var (
	BoxColor      = Color{0.85, 0.85, 0.85}
	CurrentColor  = Color{0.2, 0.9, 0.9}
	HandColor     = Color{1, 0.9, 0.2}
	BoneColor     = Color{0.9, 0.4, 0.3}
	LooseColor    = Color{0.6, 0.6, 0.6}
	SelectedColor = Color{0.3, 1, 0.3}
	HeldColor     = Color{1, 0.8, 0}
	GroundColor   = Color{0.3, 0.3, 0.35}
)

// FloatsPerVertex is position followed by color.
const FloatsPerVertex = 6

// BoxVertexCount is the number of line vertices for one box (12 edges).
const BoxVertexCount = 24

// boxEdges indexes the corners of a box, corner i having bit 0 for X, bit 1
// for Y and bit 2 for Z set at the max side.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // bottom
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // top
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // vertical
}

// Lines accumulates interleaved line vertices.
type Lines struct {
	Data []float32
}

// Reset empties the buffer, keeping its capacity.
func (l *Lines) Reset() { l.Data = l.Data[:0] }

// Count returns the number of vertices.
func (l *Lines) Count() int { return len(l.Data) / FloatsPerVertex }

// Line appends one segment.
func (l *Lines) Line(a, b math.Vec3, c Color) {
	l.Data = append(l.Data,
		a.X, a.Y, a.Z, c[0], c[1], c[2],
		b.X, b.Y, b.Z, c[0], c[1], c[2],
	)
}

// Box appends the wireframe of b transformed by m.
func (l *Lines) Box(b rig.Bounds, m math.Mat4, c Color) {
	var corners [8]math.Vec3
	for i := range corners {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		corners[i] = m.TransformPoint(p)
	}
	for _, e := range boxEdges {
		l.Line(corners[e[0]], corners[e[1]], c)
	}
}

// Grid appends a square ground grid on z = 0.
func (l *Lines) Grid(half float32, step float32) {
	for v := -half; v <= half+step/2; v += step {
		l.Line(math.Vec3{X: v, Y: -half}, math.Vec3{X: v, Y: half}, GroundColor)
		l.Line(math.Vec3{X: -half, Y: v}, math.Vec3{X: half, Y: v}, GroundColor)
	}
}

// Body appends the skeleton: component boxes when boxes are shown,
// otherwise bones between segment pivots.
func (l *Lines) Body(c *sim.Context) {
	skel := c.Skeleton
	model := skel.Model()

	if !c.ShowBoxes {
		l.bones(skel, skel.Segment(rig.Torso))
		return
	}
	for comp := rig.Component(0); comp < rig.NumComponents; comp++ {
		part := skel.PartOf(comp)
		color := BoxColor
		switch {
		case c.ShowHands && (comp == rig.RightHandBox || comp == rig.LeftHandBox):
			color = HandColor
		case part == c.Current:
			color = CurrentColor
		}
		l.Box(model.Bounds[comp], skel.WorldMatrix(part), color)
	}
}

func (l *Lines) bones(skel *rig.Skeleton, seg *rig.Segment) {
	from := seg.World().TransformPoint(seg.Pivot())
	for _, p := range seg.Children() {
		child := skel.Segment(p)
		l.Line(from, child.World().TransformPoint(child.Pivot()), BoneColor)
		l.bones(skel, child)
	}
}

// Objects appends every loose kinematic body in the arena.
func (l *Lines) Objects(c *sim.Context) {
	held, _ := c.Held()
	selected := make(map[physics.Handle]bool, len(c.Selected()))
	for _, h := range c.Selected() {
		selected[h] = true
	}

	c.Arena.Each(func(h physics.Handle, b physics.Body) {
		if c.Sync.Owns(h) {
			return
		}
		kb, ok := b.(*physics.KinematicBody)
		if !ok {
			return
		}
		color := LooseColor
		switch {
		case h == held:
			color = HeldColor
		case selected[h]:
			color = SelectedColor
		}
		half := kb.Extent.Scale(0.5)
		l.Box(rig.Bounds{Min: half.Neg(), Max: half}, kb.Matrix(), color)
	})
}
