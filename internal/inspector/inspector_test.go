package inspector

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AllenDang/cimgui-go/imgui"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/sim"
)

type fakeKeys struct {
	down, pressed map[imgui.Key]bool
}

func (f fakeKeys) Down(k imgui.Key) bool    { return f.down[k] }
func (f fakeKeys) Pressed(k imgui.Key) bool { return f.pressed[k] }

func ops(cmds []sim.Command) []sim.Op {
	out := make([]sim.Op, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func TestCommandsIdleWithoutWalkKeys(t *testing.T) {
	got := commands(fakeKeys{})
	if len(got) != 1 || got[0].Op != sim.OpIdle {
		t.Errorf("commands = %v, want [idle]", ops(got))
	}
}

func TestCommandsOrder(t *testing.T) {
	keys := fakeKeys{
		down:    map[imgui.Key]bool{imgui.KeyJ: true, imgui.KeyLeftArrow: true},
		pressed: map[imgui.Key]bool{imgui.KeySpace: true, imgui.Key3: true},
	}
	got := commands(keys)
	want := []sim.Op{sim.OpToggleMode, sim.OpToggleSequence, sim.OpTurnLeft, sim.OpWalkForward}
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", ops(got), want)
	}
	for i := range want {
		if got[i].Op != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i].Op, want[i])
		}
	}
	if got[1].Index != 3 {
		t.Errorf("sequence index = %d, want 3", got[1].Index)
	}
}

func TestBindingsAreDistinct(t *testing.T) {
	seen := map[imgui.Key]sim.Op{}
	check := func(k imgui.Key, op sim.Op) {
		if prev, ok := seen[k]; ok {
			t.Errorf("key %v bound to %v and %v", k, prev, op)
		}
		seen[k] = op
	}
	for _, h := range heldKeys {
		check(h.key, h.op)
	}
	for _, p := range pressedKeys {
		check(p.key, p.op)
	}
	for _, k := range digitKeys {
		check(k, sim.OpToggleSequence)
	}
}

func TestWithPath(t *testing.T) {
	cfg := config.Default()
	cfg.Model.LibraryPath = "moves.yaml"

	next := withPath(cfg, bodyModel, "body.yaml")
	if next.Model.BodyPath != "body.yaml" || next.Model.LibraryPath != "moves.yaml" {
		t.Errorf("model config = %+v", next.Model)
	}
	if cfg.Model.BodyPath != "" {
		t.Errorf("original config changed: %+v", cfg.Model)
	}

	next = withPath(next, animLibrary, "other.yaml")
	if next.Model.LibraryPath != "other.yaml" || next.Model.BodyPath != "body.yaml" {
		t.Errorf("model config = %+v", next.Model)
	}
}

func TestReloadKeepsRunningSimulationOnError(t *testing.T) {
	cfg := config.Default()
	ctx, err := sim.Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := &App{cfg: cfg, ctx: ctx}

	a.reload(pick{kind: bodyModel, path: t.TempDir() + "/missing.yaml"})
	if a.ctx != ctx || a.cfg != cfg {
		t.Error("failed reload replaced the simulation")
	}
	if a.status == "" {
		t.Error("no status after failed reload")
	}

	a.reload(pick{kind: animLibrary, path: ""})
	if a.ctx == ctx {
		t.Error("reload kept the old simulation")
	}
}

func TestSaveSettingsWritesLiveRate(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir is redirected through XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	ctx, err := sim.Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx.Rate = 1.5
	a := &App{cfg: cfg, ctx: ctx}
	a.saveSettings()

	data, err := os.ReadFile(filepath.Join(config.ConfigDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("settings not written: %v (status %q)", err, a.status)
	}
	var saved config.Config
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("saved settings unreadable: %v", err)
	}
	if saved.Sim.MovementRate != 1.5 {
		t.Errorf("saved rate = %v, want 1.5", saved.Sim.MovementRate)
	}
}
