// Package sim owns one simulated body and everything that acts on it each
// frame: the animation library, the physics proxies, the held object and the
// user's current selection.
package sim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/anim"
	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
)

// Mode decides what the arms do when the body is not walking.
type Mode int

const (
	// Collision lets the arms swing and bump into things.
	Collision Mode = iota
	// Selection raises the arms to pick objects up.
	Selection
)

func (m Mode) String() string {
	if m == Selection {
		return "selection"
	}
	return "collision"
}

// WholeBody is the selection value past the last part. Commands then act on
// the root transform.
const WholeBody = rig.Part(rig.NumParts)

// Context is the complete mutable state of a simulation. It is not safe for
// concurrent use; commands are applied between frames.
type Context struct {
	Skeleton *rig.Skeleton
	Library  *anim.Library
	Arena    *physics.Arena
	Sync     *physics.Sync
	World    *physics.World

	Rate    float32
	Mode    Mode
	Current rig.Part

	ShowBoxes bool
	ShowHands bool

	cfg      config.SimConfig
	held     physics.Handle
	selected []physics.Handle
}

// New wires a context around existing components.
func New(cfg config.SimConfig, skel *rig.Skeleton, lib *anim.Library, arena *physics.Arena, sync *physics.Sync) *Context {
	return &Context{
		Skeleton:  skel,
		Library:   lib,
		Arena:     arena,
		Sync:      sync,
		World:     physics.NewWorld(arena, sync, cfg.Gravity, cfg.GroundFriction),
		Rate:      cfg.MovementRate,
		Mode:      Collision,
		Current:   WholeBody,
		ShowBoxes: true,
		cfg:       cfg,
	}
}

// Frame runs one simulation step: loose objects move, sequences advance,
// world transforms are recomputed, proxies are synced and the held object
// follows the hands.
func (c *Context) Frame(speedFactor float32) physics.Report {
	c.World.Step(c.cfg.PhysicsStep, c.contact)

	for _, seq := range c.Library.Sequences() {
		f := speedFactor
		if seq.ScalesWithRate() {
			f *= c.Rate
		}
		seq.Advance(f)
	}

	c.Skeleton.Recompute()
	report := c.Sync.Run(c.Skeleton)
	c.carry()
	return report
}

// Held returns the handle of the carried object, if any.
func (c *Context) Held() (physics.Handle, bool) {
	return c.held, c.held.Valid()
}

// Selected returns the objects that Pickup chooses from.
func (c *Context) Selected() []physics.Handle { return c.selected }

// Select marks h as a pickup candidate. Skeleton bodies are ignored.
func (c *Context) Select(h physics.Handle) {
	if c.Sync.Owns(h) {
		return
	}
	for _, s := range c.selected {
		if s == h {
			return
		}
	}
	c.selected = append(c.selected, h)
}

// ClearSelection forgets all pickup candidates.
func (c *Context) ClearSelection() { c.selected = nil }

func (c *Context) sequence(name string) *anim.Sequence {
	seq := c.Library.Get(name)
	if seq == nil {
		logger.Debug("sequence not in library", zap.String("sequence", name))
	}
	return seq
}

func startLooped(seq *anim.Sequence) {
	if seq != nil && !seq.Active() {
		seq.Loop()
		seq.Start()
	}
}

func halt(seq *anim.Sequence) {
	if seq != nil {
		seq.Unloop()
		seq.Stop()
	}
}

func start(seq *anim.Sequence) {
	if seq != nil {
		seq.Start()
	}
}

func active(seq *anim.Sequence) bool {
	return seq != nil && seq.Active()
}
