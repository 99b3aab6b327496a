package rig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cydsim/pkg/math"
)

// Bounds is an axis-aligned box in body model space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Model holds the static bounding geometry of the body, modeled in place
// (Z up, feet near z=-0.5, facing -Y).
type Model struct {
	Bounds [NumComponents]Bounds
}

func box(minX, minY, minZ, maxX, maxY, maxZ float32) Bounds {
	return Bounds{
		Min: math.Vec3{X: minX, Y: minY, Z: minZ},
		Max: math.Vec3{X: maxX, Y: maxY, Z: maxZ},
	}
}

// DefaultModel returns the built-in body proportions.
func DefaultModel() *Model {
	m := &Model{}
	b := &m.Bounds

	b[TorsoBox] = box(-0.20, -0.10, 0.05, 0.20, 0.10, 0.60)
	b[HeadBox] = box(-0.12, -0.12, 0.62, 0.12, 0.12, 0.90)
	b[RightEyeBox] = box(-0.08, -0.13, 0.75, -0.03, -0.10, 0.80)
	b[LeftEyeBox] = box(0.03, -0.13, 0.75, 0.08, -0.10, 0.80)

	b[UpperRightArmBox] = box(-0.32, -0.06, 0.30, -0.21, 0.06, 0.60)
	b[LowerRightArmBox] = box(-0.32, -0.06, 0.02, -0.21, 0.06, 0.30)
	b[RightHandBox] = box(-0.31, -0.05, -0.10, -0.22, 0.05, 0.02)
	b[UpperLeftArmBox] = box(0.21, -0.06, 0.30, 0.32, 0.06, 0.60)
	b[LowerLeftArmBox] = box(0.21, -0.06, 0.02, 0.32, 0.06, 0.30)
	b[LeftHandBox] = box(0.22, -0.05, -0.10, 0.31, 0.05, 0.02)

	b[UpperRightLegBox] = box(-0.18, -0.07, -0.22, -0.03, 0.07, 0.05)
	b[RightKneeBox] = box(-0.15, -0.09, -0.26, -0.06, -0.03, -0.18)
	b[LowerRightLegBox] = box(-0.17, -0.06, -0.45, -0.04, 0.06, -0.22)
	b[RightFootBox] = box(-0.17, -0.14, -0.50, -0.04, 0.06, -0.45)
	b[UpperLeftLegBox] = box(0.03, -0.07, -0.22, 0.18, 0.07, 0.05)
	b[LeftKneeBox] = box(0.06, -0.09, -0.26, 0.15, -0.03, -0.18)
	b[LowerLeftLegBox] = box(0.04, -0.06, -0.45, 0.17, 0.06, -0.22)
	b[LeftFootBox] = box(0.04, -0.14, -0.50, 0.17, 0.06, -0.45)

	return m
}

// modelFile is the YAML layout of a body model override.
type modelFile struct {
	Components map[string]boxFile `yaml:"components"`
}

type boxFile struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// LoadModel reads component bounds from a YAML file. Components absent from
// the file keep their default bounds.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseModel(data)
}

// ParseModel decodes a YAML body model over the defaults.
func ParseModel(data []byte) (*Model, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding body model: %w", err)
	}

	m := DefaultModel()
	for name, c := range f.Components {
		id, err := ParseComponent(name)
		if err != nil {
			return nil, err
		}
		b := box(c.Min[0], c.Min[1], c.Min[2], c.Max[0], c.Max[1], c.Max[2])
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			return nil, fmt.Errorf("component %s: min %v exceeds max %v", name, b.Min, b.Max)
		}
		m.Bounds[id] = b
	}
	return m, nil
}

// Marshal encodes the model in the format read by ParseModel.
func (m *Model) Marshal() ([]byte, error) {
	var f modelFile
	f.Components = make(map[string]boxFile, NumComponents)
	for i, b := range m.Bounds {
		f.Components[Component(i).String()] = boxFile{
			Min: [3]float32{b.Min.X, b.Min.Y, b.Min.Z},
			Max: [3]float32{b.Max.X, b.Max.Y, b.Max.Z},
		}
	}
	return yaml.Marshal(&f)
}
