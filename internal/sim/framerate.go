package sim

import "time"

// FrameRate measures how fast frames are actually produced and converts that
// into a speed factor, so animation speed does not depend on frame rate.
type FrameRate struct {
	target time.Duration
	window time.Duration

	start  time.Time
	frames int

	speedFactor float32
}

// NewFrameRate targets fps frames per second. The measurement is refreshed
// once per second.
func NewFrameRate(fps int) *FrameRate {
	if fps <= 0 {
		fps = 60
	}
	return &FrameRate{
		target:      time.Second / time.Duration(fps),
		window:      time.Second,
		speedFactor: 1,
	}
}

// SpeedFactor returns target frame time over measured frame time. It is 1
// until the first window completes.
func (f *FrameRate) SpeedFactor() float32 { return f.speedFactor }

// Target returns the intended duration of one frame.
func (f *FrameRate) Target() time.Duration { return f.target }

// Update counts a frame finished at now.
func (f *FrameRate) Update(now time.Time) {
	if f.start.IsZero() {
		f.start = now
		return
	}
	f.frames++

	elapsed := now.Sub(f.start)
	if elapsed < f.window {
		return
	}
	measured := elapsed / time.Duration(f.frames)
	if measured > 0 {
		f.speedFactor = float32(f.target.Seconds() / measured.Seconds())
	}
	f.start = now
	f.frames = 0
}
