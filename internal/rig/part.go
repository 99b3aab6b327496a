package rig

import "fmt"

// Part identifies one of the ten animated segments. It is also the
// segment's index in the skeleton arena.
type Part int

// Body parts.
const (
	Torso Part = iota
	Head
	UpperRightArm
	LowerRightArm
	UpperRightLeg
	LowerRightLeg
	UpperLeftArm
	LowerLeftArm
	UpperLeftLeg
	LowerLeftLeg

	NumParts = 10
)

// NoPart marks an unmapped component.
const NoPart Part = -1

var partNames = [NumParts]string{
	"torso", "head",
	"upper-right-arm", "lower-right-arm",
	"upper-right-leg", "lower-right-leg",
	"upper-left-arm", "lower-left-arm",
	"upper-left-leg", "lower-left-leg",
}

func (p Part) String() string {
	if p.Valid() {
		return partNames[p]
	}
	return fmt.Sprintf("part(%d)", int(p))
}

// Valid reports whether p indexes a segment.
func (p Part) Valid() bool {
	return p >= 0 && p < NumParts
}

// ParsePart returns the part with the given name.
func ParsePart(name string) (Part, error) {
	for i, n := range partNames {
		if n == name {
			return Part(i), nil
		}
	}
	return NoPart, fmt.Errorf("%w %q", ErrUnknownPart, name)
}

// Component identifies one bounding box of the body model. Several
// components ride on the same segment (the head carries both eyes).
type Component int

// Body model components.
const (
	UpperRightLegBox Component = iota
	HeadBox
	UpperRightArmBox
	UpperLeftArmBox
	LowerLeftArmBox
	LowerRightArmBox
	RightKneeBox
	UpperLeftLegBox
	LowerLeftLegBox
	LeftKneeBox
	LowerRightLegBox
	LeftEyeBox
	RightEyeBox
	RightHandBox
	LeftHandBox
	RightFootBox
	LeftFootBox
	TorsoBox

	NumComponents = 18
)

var componentNames = [NumComponents]string{
	"upper-right-leg", "head", "upper-right-arm", "upper-left-arm",
	"lower-left-arm", "lower-right-arm", "right-knee", "upper-left-leg",
	"lower-left-leg", "left-knee", "lower-right-leg", "left-eye",
	"right-eye", "right-hand", "left-hand", "right-foot",
	"left-foot", "torso",
}

func (c Component) String() string {
	if c >= 0 && c < NumComponents {
		return componentNames[c]
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// ParseComponent returns the component with the given name.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownComponent, name)
}

// DefaultComponentParts maps every component to the segment that carries it.
func DefaultComponentParts() []Part {
	return []Part{
		UpperRightLegBox: UpperRightLeg,
		HeadBox:          Head,
		UpperRightArmBox: UpperRightArm,
		UpperLeftArmBox:  UpperLeftArm,
		LowerLeftArmBox:  LowerLeftArm,
		LowerRightArmBox: LowerRightArm,
		RightKneeBox:     UpperRightLeg,
		UpperLeftLegBox:  UpperLeftLeg,
		LowerLeftLegBox:  LowerLeftLeg,
		LeftKneeBox:      UpperLeftLeg,
		LowerRightLegBox: LowerRightLeg,
		LeftEyeBox:       Head,
		RightEyeBox:      Head,
		RightHandBox:     LowerRightArm,
		LeftHandBox:      LowerLeftArm,
		RightFootBox:     LowerRightLeg,
		LeftFootBox:      LowerLeftLeg,
		TorsoBox:         Torso,
	}
}
