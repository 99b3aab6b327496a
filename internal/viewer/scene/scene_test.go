package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/pkg/math"
)

const tolerance = 1e-4

func newContext(t *testing.T) *sim.Context {
	t.Helper()
	c, err := sim.Load(config.Default())
	if err != nil {
		t.Fatalf("sim.Load: %v", err)
	}
	return c
}

func vertex(l *Lines, i int) (math.Vec3, Color) {
	d := l.Data[i*FloatsPerVertex:]
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}, Color{d[3], d[4], d[5]}
}

func TestBoxEdges(t *testing.T) {
	var l Lines
	b := rig.Bounds{Min: math.Vec3{X: -1, Y: -2, Z: -3}, Max: math.Vec3{X: 1, Y: 2, Z: 3}}
	l.Box(b, math.Translate(10, 0, 0), BoxColor)

	if l.Count() != BoxVertexCount {
		t.Fatalf("Count() = %d, want %d", l.Count(), BoxVertexCount)
	}
	for i := 0; i < l.Count(); i += 2 {
		a, ca := vertex(&l, i)
		b, _ := vertex(&l, i+1)
		if ca != BoxColor {
			t.Errorf("vertex %d color %v", i, ca)
		}
		if a.X < 9-tolerance || a.X > 11+tolerance {
			t.Errorf("vertex %d not translated: %v", i, a)
		}
		// Each edge runs along exactly one axis.
		d := b.Sub(a)
		axes := 0
		for _, v := range []float32{d.X, d.Y, d.Z} {
			if v > tolerance || v < -tolerance {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("edge %d is not axis aligned: %v -> %v", i/2, a, b)
		}
	}
}

func TestGrid(t *testing.T) {
	var l Lines
	l.Grid(2, 1)
	// Five lines each way.
	if l.Count() != 20 {
		t.Errorf("Count() = %d, want 20", l.Count())
	}
	l.Reset()
	if l.Count() != 0 {
		t.Error("Reset left vertices behind")
	}
}

func TestBodyBoxes(t *testing.T) {
	c := newContext(t)
	var l Lines
	l.Body(c)

	if want := int(rig.NumComponents) * BoxVertexCount; l.Count() != want {
		t.Fatalf("Count() = %d, want %d", l.Count(), want)
	}

	// The torso box sits at its world position.
	torso := c.Skeleton.Model().Bounds[rig.TorsoBox]
	start := int(rig.TorsoBox) * BoxVertexCount
	p, _ := vertex(&l, start)
	want := c.Skeleton.WorldMatrix(rig.Torso).TransformPoint(torso.Min)
	if p.Sub(want).Length() > tolerance {
		t.Errorf("torso corner = %v, want %v", p, want)
	}
}

func TestBodyHighlights(t *testing.T) {
	c := newContext(t)
	c.ShowHands = true
	c.Current = rig.Head

	var l Lines
	l.Body(c)

	colorOf := func(comp rig.Component) Color {
		_, col := vertex(&l, int(comp)*BoxVertexCount)
		return col
	}
	if colorOf(rig.RightHandBox) != HandColor {
		t.Error("right hand not highlighted")
	}
	if colorOf(rig.HeadBox) != CurrentColor || colorOf(rig.LeftEyeBox) != CurrentColor {
		t.Error("current part not highlighted")
	}
	if colorOf(rig.TorsoBox) != BoxColor {
		t.Error("unselected part highlighted")
	}
}

func TestBodyBones(t *testing.T) {
	c := newContext(t)
	c.ShowBoxes = false

	var l Lines
	l.Body(c)
	// One bone per non-root segment.
	if want := (rig.NumParts - 1) * 2; l.Count() != want {
		t.Errorf("Count() = %d, want %d", l.Count(), want)
	}
}

func TestObjects(t *testing.T) {
	c := newContext(t)
	loose := c.Arena.Insert(physics.NewKinematicBody(math.Vec3{X: 1}, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	c.Arena.Insert(physics.NewKinematicBody(math.Vec3{X: -1}, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	c.Select(loose)

	var l Lines
	l.Objects(c)
	if l.Count() != 2*BoxVertexCount {
		t.Fatalf("Count() = %d, want two boxes", l.Count())
	}

	p, col := vertex(&l, 0)
	if col != SelectedColor {
		t.Errorf("selected body color %v", col)
	}
	if p.X < 0.9-tolerance || p.X > 1.1+tolerance {
		t.Errorf("selected body vertex %v not near x=1", p)
	}
	if _, col := vertex(&l, BoxVertexCount); col != LooseColor {
		t.Errorf("loose body color %v", col)
	}
}

func TestOrbitCameraPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 5
	c.Elevation = 0
	c.Azimuth = 0

	if p := c.Position(); p.Sub(math.Vec3{Y: -5}).Length() > tolerance {
		t.Errorf("Position() = %v, want (0,-5,0)", p)
	}

	c.Elevation = gomath.Pi / 2
	if p := c.Position(); p.Sub(math.Vec3{Z: 5}).Length() > tolerance {
		t.Errorf("Position() = %v, want (0,0,5)", p)
	}
}

func TestOrbitCameraLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Follow(math.Vec3{X: 1, Y: 2, Z: 0.5})

	got := c.ViewMatrix().TransformPoint(c.Center)
	want := math.Vec3{Z: -c.Distance}
	if got.Sub(want).Length() > 1e-3 {
		t.Errorf("center in view space = %v, want %v", got, want)
	}
}

func TestOrbitCameraClamps(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	c.HandleZoom(-1000)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
	c.HandleDrag(0, 1e6)
	if c.Elevation != c.MaxElevation {
		t.Errorf("Elevation = %v, want max %v", c.Elevation, c.MaxElevation)
	}
}
