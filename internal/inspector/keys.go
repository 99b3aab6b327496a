package inspector

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/cydsim/internal/sim"
)

// The same bindings as the keyboard viewer, in ImGui key codes.
var heldKeys = []struct {
	key imgui.Key
	op  sim.Op
}{
	{imgui.KeyLeftArrow, sim.OpTurnLeft},
	{imgui.KeyRightArrow, sim.OpTurnRight},
	{imgui.KeyUpArrow, sim.OpTiltUp},
	{imgui.KeyDownArrow, sim.OpTiltDown},
	{imgui.KeyH, sim.OpTwistLeft},
	{imgui.KeyL, sim.OpTwistRight},
	{imgui.KeyJ, sim.OpWalkForward},
	{imgui.KeyK, sim.OpWalkBackward},
	{imgui.KeyU, sim.OpRise},
	{imgui.KeyM, sim.OpSink},
}

var pressedKeys = []struct {
	key imgui.Key
	op  sim.Op
}{
	{imgui.KeySpace, sim.OpToggleMode},
	{imgui.KeyLeftBracket, sim.OpPickup},
	{imgui.KeyRightBracket, sim.OpDrop},
	{imgui.KeyN, sim.OpNextPart},
	{imgui.KeyQ, sim.OpSlower},
	{imgui.KeyW, sim.OpFaster},
	{imgui.KeyV, sim.OpToggleBoxes},
	{imgui.KeyS, sim.OpSelectNearest},
}

var digitKeys = [10]imgui.Key{
	imgui.Key0, imgui.Key1, imgui.Key2, imgui.Key3, imgui.Key4,
	imgui.Key5, imgui.Key6, imgui.Key7, imgui.Key8, imgui.Key9,
}

// keyState answers for one frame of keyboard input.
type keyState interface {
	Down(k imgui.Key) bool
	Pressed(k imgui.Key) bool
}

type imguiKeys struct{}

func (imguiKeys) Down(k imgui.Key) bool    { return imgui.IsKeyDown(k) }
func (imguiKeys) Pressed(k imgui.Key) bool { return imgui.IsKeyChordPressed(imgui.KeyChord(k)) }

// commands converts this frame's keys into simulator commands. Presses come
// first, then held keys, then an idle when neither walk key is down.
func commands(keys keyState) []sim.Command {
	var cmds []sim.Command
	for _, p := range pressedKeys {
		if keys.Pressed(p.key) {
			cmds = append(cmds, sim.Command{Op: p.op})
		}
	}
	for n, k := range digitKeys {
		if keys.Pressed(k) {
			cmds = append(cmds, sim.Command{Op: sim.OpToggleSequence, Index: n})
		}
	}
	for _, h := range heldKeys {
		if keys.Down(h.key) {
			cmds = append(cmds, sim.Command{Op: h.op})
		}
	}
	if !keys.Down(imgui.KeyJ) && !keys.Down(imgui.KeyK) {
		cmds = append(cmds, sim.Command{Op: sim.OpIdle})
	}
	return cmds
}
