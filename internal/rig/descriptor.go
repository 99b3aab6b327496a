package rig

import "github.com/Faultbox/cydsim/pkg/math"

// PivotFunc derives a segment's rotation pivot from the body model.
type PivotFunc func(m *Model) math.Vec3

// Descriptor is the static description of one segment: where it rotates,
// which segments hang off it, and what it inherits from its parent.
type Descriptor struct {
	Part     Part
	Children []Part
	Pivot    PivotFunc

	// TranslationOnly children receive the parent's matrix before the
	// parent's own rotation, so they follow the parent's position but not
	// its lean.
	TranslationOnly bool
}

// Topology is the complete static shape of a skeleton.
type Topology struct {
	Root           Part
	Parts          []Descriptor
	ComponentParts []Part
}

func limbPivot(c Component, zScale float32) PivotFunc {
	return func(m *Model) math.Vec3 {
		b := m.Bounds[c]
		center := b.Center()
		return math.Vec3{X: center.X * 0.9, Y: center.Y, Z: b.Max.Z * zScale}
	}
}

func shinPivot(c Component) PivotFunc {
	return func(m *Model) math.Vec3 {
		b := m.Bounds[c]
		return math.Vec3{Y: b.Max.Y * 0.5, Z: b.Max.Z * 1.1}
	}
}

// DefaultTopology returns the humanoid hierarchy: arms, head and legs hang
// off the torso, forearms and shins off their upper limbs. Upper legs skip
// torso rotation so the legs stay planted when the torso leans.
func DefaultTopology() Topology {
	return Topology{
		Root: Torso,
		Parts: []Descriptor{
			Torso: {
				Part:     Torso,
				Children: []Part{UpperRightArm, UpperLeftArm, Head, UpperRightLeg, UpperLeftLeg},
				Pivot: func(m *Model) math.Vec3 {
					return math.Vec3{Z: m.Bounds[TorsoBox].Min.Z}
				},
			},
			Head: {
				Part: Head,
				Pivot: func(m *Model) math.Vec3 {
					return math.Vec3{Y: m.Bounds[UpperRightArmBox].Center().Y}
				},
			},
			UpperRightArm: {
				Part:     UpperRightArm,
				Children: []Part{LowerRightArm},
				Pivot:    limbPivot(UpperRightArmBox, 0.9),
			},
			LowerRightArm: {
				Part:  LowerRightArm,
				Pivot: limbPivot(LowerRightArmBox, 0.85),
			},
			UpperRightLeg: {
				Part:            UpperRightLeg,
				Children:        []Part{LowerRightLeg},
				Pivot:           limbPivot(UpperRightLegBox, 0.8),
				TranslationOnly: true,
			},
			LowerRightLeg: {
				Part:  LowerRightLeg,
				Pivot: shinPivot(LowerRightLegBox),
			},
			UpperLeftArm: {
				Part:     UpperLeftArm,
				Children: []Part{LowerLeftArm},
				Pivot:    limbPivot(UpperLeftArmBox, 0.9),
			},
			LowerLeftArm: {
				Part:  LowerLeftArm,
				Pivot: limbPivot(LowerLeftArmBox, 0.85),
			},
			UpperLeftLeg: {
				Part:            UpperLeftLeg,
				Children:        []Part{LowerLeftLeg},
				Pivot:           limbPivot(UpperLeftLegBox, 0.8),
				TranslationOnly: true,
			},
			LowerLeftLeg: {
				Part:  LowerLeftLeg,
				Pivot: shinPivot(LowerLeftLegBox),
			},
		},
		ComponentParts: DefaultComponentParts(),
	}
}
