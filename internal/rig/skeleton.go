// Package rig holds the articulated body: per-segment rotation state and
// transforms, the fixed segment hierarchy, and the per-frame world matrix
// pass that propagates transforms from the torso down to the limbs.
package rig

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cydsim/pkg/math"
)

// Topology validation errors.
var (
	ErrCycle             = errors.New("segment hierarchy contains a cycle")
	ErrUnmappedComponent = errors.New("component has no segment")
	ErrBadChild          = errors.New("segment child out of range")
	ErrMultipleParents   = errors.New("segment has more than one parent")
	ErrUnreachable       = errors.New("segment not reachable from root")
	ErrBadDescriptor     = errors.New("malformed segment descriptor")
	ErrUnknownPart       = errors.New("unknown body part")
	ErrUnknownComponent  = errors.New("unknown body component")
)

// DefaultGroundOffset raises the body so its feet rest on z=0.
const DefaultGroundOffset = 0.5

// Segment is one rigid part of the body.
type Segment struct {
	Part      Part
	Transform Transform

	children        []Part
	pivot           math.Vec3
	translationOnly bool
	world           math.Mat4
}

// Pivot returns the point the segment rotates about, in model space.
func (s *Segment) Pivot() math.Vec3 { return s.pivot }

// Children returns the segments attached to this one, in traversal order.
func (s *Segment) Children() []Part { return s.children }

// World returns the matrix computed by the last Recompute.
func (s *Segment) World() math.Mat4 { return s.world }

// Skeleton is the fixed hierarchy of segments for one body plus the body's
// own root transform.
type Skeleton struct {
	// Transform places the whole body in the world.
	Transform Transform

	// Speed is the signed walking speed used for proxy velocities.
	Speed float32

	model          *Model
	root           Part
	componentParts []Part
	segments       [NumParts]Segment
	rootMatrix     math.Mat4
}

// New builds a skeleton over the default topology.
func New(model *Model) (*Skeleton, error) {
	return NewWithTopology(model, DefaultTopology())
}

// NewWithTopology validates topo and builds a skeleton over it.
func NewWithTopology(model *Model, topo Topology) (*Skeleton, error) {
	if model == nil {
		model = DefaultModel()
	}
	if err := validate(topo); err != nil {
		return nil, err
	}

	s := &Skeleton{
		Transform:      NewTransform(),
		model:          model,
		root:           topo.Root,
		componentParts: append([]Part(nil), topo.ComponentParts...),
	}
	s.Transform.Offset.Z = DefaultGroundOffset

	for _, d := range topo.Parts {
		seg := &s.segments[d.Part]
		seg.Part = d.Part
		seg.Transform = NewTransform()
		seg.children = append([]Part(nil), d.Children...)
		seg.translationOnly = d.TranslationOnly
		seg.pivot = d.Pivot(model)
		seg.world = math.Identity()
	}
	s.rootMatrix = math.Identity()

	return s, nil
}

func validate(topo Topology) error {
	if len(topo.Parts) != NumParts {
		return fmt.Errorf("%w: want %d descriptors, got %d", ErrBadDescriptor, NumParts, len(topo.Parts))
	}
	for i, d := range topo.Parts {
		if d.Part != Part(i) {
			return fmt.Errorf("%w: descriptor %d describes %s", ErrBadDescriptor, i, d.Part)
		}
		if d.Pivot == nil {
			return fmt.Errorf("%w: %s has no pivot", ErrBadDescriptor, d.Part)
		}
	}
	if !topo.Root.Valid() {
		return fmt.Errorf("%w: root %s", ErrBadChild, topo.Root)
	}

	parent := make([]Part, NumParts)
	for i := range parent {
		parent[i] = NoPart
	}
	for _, d := range topo.Parts {
		for _, c := range d.Children {
			if !c.Valid() {
				return fmt.Errorf("%w: %s lists %s", ErrBadChild, d.Part, c)
			}
			if c == topo.Root || c == d.Part {
				return fmt.Errorf("%w: %s -> %s", ErrCycle, d.Part, c)
			}
			if parent[c] != NoPart {
				return fmt.Errorf("%w: %s under %s and %s", ErrMultipleParents, c, parent[c], d.Part)
			}
			parent[c] = d.Part
		}
	}

	// With one parent per segment and the root parentless, any segment not
	// reached from the root sits on a detached cycle.
	seen := make([]bool, NumParts)
	stack := []Part{topo.Root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[p] {
			return fmt.Errorf("%w: %s visited twice", ErrCycle, p)
		}
		seen[p] = true
		stack = append(stack, topo.Parts[p].Children...)
	}
	for i, ok := range seen {
		if !ok {
			if parent[i] != NoPart {
				return fmt.Errorf("%w: %s", ErrCycle, Part(i))
			}
			return fmt.Errorf("%w: %s", ErrUnreachable, Part(i))
		}
	}

	if len(topo.ComponentParts) != NumComponents {
		return fmt.Errorf("%w: want %d mappings, got %d", ErrUnmappedComponent, NumComponents, len(topo.ComponentParts))
	}
	for c, p := range topo.ComponentParts {
		if !p.Valid() {
			return fmt.Errorf("%w: %s", ErrUnmappedComponent, Component(c))
		}
	}
	return nil
}

// Segment returns the segment for p.
func (s *Skeleton) Segment(p Part) *Segment {
	return &s.segments[p]
}

// Model returns the body model the skeleton was built from.
func (s *Skeleton) Model() *Model {
	return s.model
}

// PartOf returns the segment that carries component c.
func (s *Skeleton) PartOf(c Component) Part {
	return s.componentParts[c]
}

// Recompute rebuilds every world matrix from the root transform down.
func (s *Skeleton) Recompute() {
	s.rootMatrix = s.Transform.Local()
	s.computeWorld(s.root, s.rootMatrix)
}

// computeWorld places p under parent and recurses. pre is the parent-space
// placement without p's rotation; children flagged TranslationOnly get pre
// instead of the final matrix.
func (s *Skeleton) computeWorld(p Part, parent math.Mat4) {
	seg := &s.segments[p]

	pre := parent.Mul(math.TranslateVec(seg.Transform.Position()))
	seg.world = pre.
		Mul(math.TranslateVec(seg.pivot)).
		Mul(seg.Transform.Matrix()).
		Mul(math.TranslateVec(seg.pivot.Neg()))

	for _, c := range seg.children {
		if s.segments[c].translationOnly {
			s.computeWorld(c, pre)
		} else {
			s.computeWorld(c, seg.world)
		}
	}
}

// WorldMatrix returns the world matrix of p from the last Recompute. It is
// stable until the next Recompute.
func (s *Skeleton) WorldMatrix(p Part) math.Mat4 {
	return s.segments[p].world
}

// RootMatrix returns the body placement from the last Recompute.
func (s *Skeleton) RootMatrix() math.Mat4 {
	return s.rootMatrix
}

// ComponentCenter returns the world position of component c's box center.
func (s *Skeleton) ComponentCenter(c Component) math.Vec3 {
	return s.WorldMatrix(s.PartOf(c)).TransformPoint(s.model.Bounds[c].Center())
}

// Forward returns the body's local +Z axis in world space.
func (s *Skeleton) Forward() math.Vec3 {
	return s.Transform.Forward()
}

// Heading returns the direction the body walks when moving forward (-Y).
func (s *Skeleton) Heading() math.Vec3 {
	return s.Transform.Up().Neg()
}
