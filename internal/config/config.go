// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all simulator settings.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Model   ModelConfig   `yaml:"model"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// SimConfig holds movement scales and frame pacing.
type SimConfig struct {
	MovementRate      float32 `yaml:"movement_rate"`       // Multiplier for walking speed and walk animations
	AngularDeltaScale float32 `yaml:"angular_delta_scale"` // Degrees per rotate command
	LinearDeltaScale  float32 `yaml:"linear_delta_scale"`  // Distance per move command, times rate
	LinearSpeedScale  float32 `yaml:"linear_speed_scale"`  // Body speed per unit rate while walking
	TargetFPS         int     `yaml:"target_fps"`
	Frames            int     `yaml:"frames"` // Headless run length
	GroundOffset      float32 `yaml:"ground_offset"`
	Gravity           float32 `yaml:"gravity"`         // Vertical acceleration of loose objects
	PhysicsStep       float32 `yaml:"physics_step"`    // Seconds of physics per frame
	GroundFriction    float32 `yaml:"ground_friction"` // Horizontal speed lost per second on the ground
}

// ModelConfig holds optional data file paths. Empty paths use the built-in
// body and animation library.
type ModelConfig struct {
	BodyPath    string `yaml:"body_path"`
	LibraryPath string `yaml:"library_path"`
}

// ViewerConfig holds display settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			MovementRate:      3.0,
			AngularDeltaScale: 1.0,
			LinearDeltaScale:  0.01,
			LinearSpeedScale:  1.0,
			TargetFPS:         60,
			Frames:            600,
			GroundOffset:      0.5,
			Gravity:           -0.5,
			PhysicsStep:       0.05,
			GroundFriction:    4,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate checks values that would make the simulation meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Sim.MovementRate < 0:
		return fmt.Errorf("%w: movement_rate %v is negative", ErrInvalid, c.Sim.MovementRate)
	case c.Sim.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps must be positive, got %d", ErrInvalid, c.Sim.TargetFPS)
	case c.Sim.PhysicsStep <= 0:
		return fmt.Errorf("%w: physics_step must be positive, got %v", ErrInvalid, c.Sim.PhysicsStep)
	case c.Sim.GroundFriction < 0:
		return fmt.Errorf("%w: ground_friction %v is negative", ErrInvalid, c.Sim.GroundFriction)
	case c.Sim.Frames < 0:
		return fmt.Errorf("%w: frames %d is negative", ErrInvalid, c.Sim.Frames)
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}
