package scene

import (
	gomath "math"

	"github.com/Faultbox/cydsim/pkg/math"
)

// OrbitCamera orbits around a center point in a Z-up world.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	Elevation float32 // Angle above the ground plane (radians)
	Azimuth   float32 // Angle around Z from -Y (radians)

	// Constraints
	MinDistance  float32
	MaxDistance  float32
	MinElevation float32
	MaxElevation float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera looking at the origin from in front of a
// body that faces -Y.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4,
		Elevation:       0.4,
		MinDistance:     0.5,
		MaxDistance:     50,
		MinElevation:    -1.4,
		MaxElevation:    1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	ce := gomath.Cos(float64(c.Elevation))
	return math.Vec3{
		X: c.Center.X + c.Distance*float32(ce*gomath.Sin(float64(c.Azimuth))),
		Y: c.Center.Y - c.Distance*float32(ce*gomath.Cos(float64(c.Azimuth))),
		Z: c.Center.Z + c.Distance*float32(gomath.Sin(float64(c.Elevation))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Z: 1})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Azimuth -= deltaX * c.DragSensitivity
	c.Elevation += deltaY * c.DragSensitivity
	c.Elevation = clamp(c.Elevation, c.MinElevation, c.MaxElevation)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Follow moves the orbit center to p.
func (c *OrbitCamera) Follow(p math.Vec3) {
	c.Center = p
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
