package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/pkg/math"
)

// Record binds one skeleton component to a body.
type Record struct {
	Component rig.Component
	Handle    Handle
}

// Report summarizes one Sync.Run.
type Report struct {
	Synced  int
	Skipped []Record
}

// Sync writes skeleton poses into bound bodies.
type Sync struct {
	arena   *Arena
	records []Record
	owned   map[Handle]struct{}
	missing map[Handle]struct{}
}

// NewSync returns a Sync with no bindings.
func NewSync(arena *Arena) *Sync {
	return &Sync{
		arena:   arena,
		owned:   make(map[Handle]struct{}),
		missing: make(map[Handle]struct{}),
	}
}

// Bind drives h from component c.
func (s *Sync) Bind(c rig.Component, h Handle) {
	s.records = append(s.records, Record{Component: c, Handle: h})
	s.owned[h] = struct{}{}
}

// Populate inserts a body for every component of model and binds it.
func (s *Sync) Populate(model *rig.Model, newBody func(rig.Component, rig.Bounds) Body) {
	for c := rig.Component(0); c < rig.NumComponents; c++ {
		s.Bind(c, s.arena.Insert(newBody(c, model.Bounds[c])))
	}
}

// Records returns the bindings in bind order.
func (s *Sync) Records() []Record { return s.records }

// Owns reports whether h is one of the skeleton's own bodies.
func (s *Sync) Owns(h Handle) bool {
	_, ok := s.owned[h]
	return ok
}

// Component returns the skeleton component driving h.
func (s *Sync) Component(h Handle) (rig.Component, bool) {
	for _, rec := range s.records {
		if rec.Handle == h {
			return rec.Component, true
		}
	}
	return 0, false
}

// ShouldCollide filters contact pairs: the skeleton's bodies never collide
// with each other.
func (s *Sync) ShouldCollide(a, b Handle) bool {
	return !(s.Owns(a) && s.Owns(b))
}

// Run copies the current world pose of every bound component into its body.
// The skeleton must have been recomputed this frame. Bodies that no longer
// resolve are skipped and listed in the report.
func (s *Sync) Run(skel *rig.Skeleton) Report {
	var r Report
	velocity := skel.Heading().Scale(skel.Speed)

	for _, rec := range s.records {
		body, ok := s.arena.Get(rec.Handle)
		if !ok {
			r.Skipped = append(r.Skipped, rec)
			if _, seen := s.missing[rec.Handle]; !seen {
				s.missing[rec.Handle] = struct{}{}
				logger.Warn("body missing for component",
					zap.String("component", rec.Component.String()),
					zap.Stringer("handle", rec.Handle))
			}
			continue
		}

		world := skel.WorldMatrix(skel.PartOf(rec.Component))
		axis, angle := PoseFromMatrix(world)

		body.SetPosition(skel.ComponentCenter(rec.Component))
		body.SetRotation(axis, angle)
		body.SetLinearVelocity(velocity)
		body.SetAngularVelocity(math.Vec3{})
		r.Synced++
	}
	return r
}

// PoseFromMatrix extracts the rotation of m as axis and angle in radians.
func PoseFromMatrix(m math.Mat4) (math.Vec3, float32) {
	return math.QuatFromMat4(m).AxisAngle()
}
