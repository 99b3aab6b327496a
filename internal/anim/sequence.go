package anim

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/logger"
)

// Sequence plays clusters in order. It is either stopped or running with a
// cursor on the current cluster.
type Sequence struct {
	name          string
	scaleWithRate bool
	clusters      []Cluster

	cursor int
	active bool
	looped bool
}

// Name returns the sequence name.
func (s *Sequence) Name() string { return s.name }

// ScalesWithRate reports whether the sequence's speed factor should be
// multiplied by the body's movement rate.
func (s *Sequence) ScalesWithRate() bool { return s.scaleWithRate }

// Len returns the number of clusters.
func (s *Sequence) Len() int { return len(s.clusters) }

// Cursor returns the index of the current cluster.
func (s *Sequence) Cursor() int { return s.cursor }

// Active reports whether the sequence is running.
func (s *Sequence) Active() bool { return s.active }

// Looped reports whether the sequence restarts after its last cluster.
func (s *Sequence) Looped() bool { return s.looped }

// Start rewinds to the first cluster and begins playing. A sequence without
// clusters stays stopped.
func (s *Sequence) Start() {
	s.cursor = 0
	if len(s.clusters) == 0 {
		logger.Warn("not starting empty sequence", zap.String("sequence", s.name))
		s.active = false
		return
	}
	s.active = true
	logger.Debug("sequence started", zap.String("sequence", s.name), zap.Bool("looped", s.looped))
}

// Stop rewinds to the first cluster and stops playing. A later Start plays
// from the beginning.
func (s *Sequence) Stop() {
	s.cursor = 0
	if s.active {
		logger.Debug("sequence stopped", zap.String("sequence", s.name))
	}
	s.active = false
}

// Loop makes the sequence restart after its last cluster.
func (s *Sequence) Loop() { s.looped = true }

// Unloop lets the sequence stop after its last cluster.
func (s *Sequence) Unloop() { s.looped = false }

// Advance steps the current cluster and moves to the next one when it
// completes. It returns true when the sequence is (or just became) stopped;
// a looped sequence never reports completion.
func (s *Sequence) Advance(speedFactor float32) bool {
	if !s.active || len(s.clusters) == 0 {
		return true
	}

	if s.clusters[s.cursor].Step(speedFactor) {
		s.cursor++
	}

	if s.cursor < len(s.clusters) {
		return false
	}
	if s.looped {
		s.cursor = 0
		logger.Debug("sequence wrapped", zap.String("sequence", s.name))
		return false
	}
	s.Stop()
	return true
}
