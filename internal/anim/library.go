package anim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cydsim/internal/rig"
)

// Names of the built-in sequences.
const (
	LegsWalking = "legs-walking"
	ArmsWalking = "arms-walking"
	ArmsPickup  = "arms-pickup"
	ArmsDown    = "arms-down"
)

var (
	ErrUnknownSequence = errors.New("unknown sequence")
	ErrDuplicate       = errors.New("duplicate sequence")
	ErrNegativeSpeed   = errors.New("negative channel speed")
	ErrNoCluster       = errors.New("target added outside a cluster")
)

// Library owns the sequences for one skeleton, in a fixed order.
type Library struct {
	sequences []*Sequence
	byName    map[string]int
}

// Len returns the number of sequences.
func (l *Library) Len() int { return len(l.sequences) }

// At returns the i-th sequence or nil.
func (l *Library) At(i int) *Sequence {
	if i < 0 || i >= len(l.sequences) {
		return nil
	}
	return l.sequences[i]
}

// Get returns a sequence by name or nil.
func (l *Library) Get(name string) *Sequence {
	i, ok := l.byName[name]
	if !ok {
		return nil
	}
	return l.sequences[i]
}

// Sequences returns the sequences in library order.
func (l *Library) Sequences() []*Sequence { return l.sequences }

// Builder assembles a Library bound to a skeleton. Methods record the first
// error and become no-ops afterwards; Build reports it.
type Builder struct {
	skel *rig.Skeleton
	lib  *Library
	seq  *Sequence
	err  error
}

// NewBuilder returns a builder for sequences animating skel.
func NewBuilder(skel *rig.Skeleton) *Builder {
	return &Builder{
		skel: skel,
		lib:  &Library{byName: make(map[string]int)},
	}
}

// Sequence begins a new sequence. Walking-style sequences pass
// scaleWithRate so that they speed up with the movement rate.
func (b *Builder) Sequence(name string, scaleWithRate bool) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.lib.byName[name]; ok {
		b.err = fmt.Errorf("%w: %q", ErrDuplicate, name)
		return b
	}
	b.seq = &Sequence{name: name, scaleWithRate: scaleWithRate}
	b.lib.byName[name] = len(b.lib.sequences)
	b.lib.sequences = append(b.lib.sequences, b.seq)
	return b
}

// Cluster begins a new cluster in the current sequence.
func (b *Builder) Cluster() *Builder {
	if b.err != nil {
		return b
	}
	if b.seq == nil {
		b.err = fmt.Errorf("%w: cluster before sequence", ErrNoCluster)
		return b
	}
	b.seq.clusters = append(b.seq.clusters, Cluster{})
	return b
}

// Animate sets one channel goal for part in the current cluster. Repeated
// calls for the same part share a target.
func (b *Builder) Animate(part rig.Part, ch Channel, value, speed float32) *Builder {
	if b.err != nil {
		return b
	}
	if b.seq == nil || len(b.seq.clusters) == 0 {
		b.err = ErrNoCluster
		return b
	}
	if !part.Valid() {
		b.err = fmt.Errorf("sequence %q: %w: %d", b.seq.name, rig.ErrUnknownPart, part)
		return b
	}
	if ch < 0 || ch >= NumChannels {
		b.err = fmt.Errorf("sequence %q: bad channel %d", b.seq.name, ch)
		return b
	}
	if speed < 0 {
		b.err = fmt.Errorf("sequence %q %s %s: %w", b.seq.name, part, ch, ErrNegativeSpeed)
		return b
	}

	c := &b.seq.clusters[len(b.seq.clusters)-1]
	for i := range c.Targets {
		if c.Targets[i].Part == part {
			c.Targets[i].Goals[ch] = Goal{Value: value, Speed: speed}
			return b
		}
	}
	t := Target{Part: part, skel: b.skel}
	t.Goals[ch] = Goal{Value: value, Speed: speed}
	c.Targets = append(c.Targets, t)
	return b
}

// Pitch is shorthand for Animate(part, RX, deg, speed).
func (b *Builder) Pitch(part rig.Part, deg, speed float32) *Builder {
	return b.Animate(part, RX, deg, speed)
}

// Build returns the library or the first recorded error.
func (b *Builder) Build() (*Library, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.lib, nil
}

// DefaultLibrary returns the built-in walking and arm sequences in index
// order: legs-walking, arms-walking, arms-pickup, arms-down.
func DefaultLibrary(skel *rig.Skeleton) (*Library, error) {
	b := NewBuilder(skel)

	b.Sequence(LegsWalking, true).
		Cluster().
		Pitch(rig.UpperRightLeg, -20, 1).
		Pitch(rig.UpperLeftLeg, 20, 1).
		Pitch(rig.LowerLeftLeg, 40, 2).
		Cluster().
		Pitch(rig.UpperRightLeg, 0, 1).
		Pitch(rig.UpperLeftLeg, 0, 1).
		Pitch(rig.LowerLeftLeg, 0, 2).
		Cluster().
		Pitch(rig.UpperRightLeg, 20, 1).
		Pitch(rig.LowerRightLeg, 40, 2).
		Pitch(rig.UpperLeftLeg, -20, 1).
		Cluster().
		Pitch(rig.UpperRightLeg, 0, 1).
		Pitch(rig.LowerRightLeg, 0, 2).
		Pitch(rig.UpperLeftLeg, 0, 1)

	b.Sequence(ArmsWalking, true).
		Cluster().
		Pitch(rig.UpperRightArm, 20, 1).
		Pitch(rig.UpperLeftArm, -20, 1).
		Pitch(rig.LowerLeftArm, -40, 2).
		Cluster().
		Pitch(rig.UpperRightArm, 0, 1).
		Pitch(rig.UpperLeftArm, 0, 1).
		Pitch(rig.LowerLeftArm, 0, 2).
		Cluster().
		Pitch(rig.UpperRightArm, -20, 1).
		Pitch(rig.LowerRightArm, -40, 2).
		Pitch(rig.UpperLeftArm, 20, 1).
		Cluster().
		Pitch(rig.UpperRightArm, 0, 1).
		Pitch(rig.LowerRightArm, 0, 2).
		Pitch(rig.UpperLeftArm, 0, 1)

	b.Sequence(ArmsPickup, false).
		Cluster().
		Pitch(rig.UpperRightArm, -90, 1).
		Pitch(rig.LowerRightArm, 0, 1).
		Pitch(rig.UpperLeftArm, -90, 1).
		Pitch(rig.LowerLeftArm, 0, 1).
		Pitch(rig.Torso, 45, 1)

	b.Sequence(ArmsDown, false).
		Cluster().
		Pitch(rig.UpperRightArm, 0, 1).
		Pitch(rig.LowerRightArm, 0, 1).
		Pitch(rig.UpperLeftArm, 0, 1).
		Pitch(rig.LowerLeftArm, 0, 1).
		Pitch(rig.Torso, 0, 1)

	return b.Build()
}

// goalFile is a [value, speed] pair.
type goalFile [2]float32

type targetFile struct {
	Part  string    `yaml:"part"`
	X     *goalFile `yaml:"x,omitempty"`
	Y     *goalFile `yaml:"y,omitempty"`
	Z     *goalFile `yaml:"z,omitempty"`
	Pitch *goalFile `yaml:"pitch,omitempty"`
	Yaw   *goalFile `yaml:"yaw,omitempty"`
	Roll  *goalFile `yaml:"roll,omitempty"`
}

func (t *targetFile) goals() [NumChannels]*goalFile {
	return [NumChannels]*goalFile{t.X, t.Y, t.Z, t.Pitch, t.Yaw, t.Roll}
}

type sequenceFile struct {
	Name          string         `yaml:"name"`
	ScaleWithRate *bool          `yaml:"scale_with_rate,omitempty"`
	Clusters      [][]targetFile `yaml:"clusters"`
}

type libraryFile struct {
	Sequences []sequenceFile `yaml:"sequences"`
}

// LoadLibrary reads a library from a YAML file. Sequences named like the
// built-ins replace them in place; other names are rejected.
func LoadLibrary(path string, skel *rig.Skeleton) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading library file: %w", err)
	}
	return ParseLibrary(data, skel)
}

// ParseLibrary decodes YAML library data over the built-in sequences.
func ParseLibrary(data []byte, skel *rig.Skeleton) (*Library, error) {
	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing library file: %w", err)
	}

	overrides := make(map[string]sequenceFile, len(f.Sequences))
	for _, s := range f.Sequences {
		switch s.Name {
		case LegsWalking, ArmsWalking, ArmsPickup, ArmsDown:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSequence, s.Name)
		}
		if _, dup := overrides[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, s.Name)
		}
		overrides[s.Name] = s
	}

	base, err := DefaultLibrary(skel)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(skel)
	for _, seq := range base.sequences {
		s, ok := overrides[seq.name]
		if !ok {
			b.lib.byName[seq.name] = len(b.lib.sequences)
			b.lib.sequences = append(b.lib.sequences, seq)
			continue
		}
		scale := seq.scaleWithRate
		if s.ScaleWithRate != nil {
			scale = *s.ScaleWithRate
		}
		b.Sequence(s.Name, scale)
		for _, cluster := range s.Clusters {
			b.Cluster()
			for _, t := range cluster {
				part, err := rig.ParsePart(t.Part)
				if err != nil {
					return nil, fmt.Errorf("sequence %q: %w", s.Name, err)
				}
				for ch, g := range t.goals() {
					if g != nil {
						b.Animate(part, Channel(ch), g[0], g[1])
					}
				}
			}
		}
	}
	return b.Build()
}
