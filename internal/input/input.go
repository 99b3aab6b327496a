// Package input turns SDL2 keyboard state into simulator commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cydsim/internal/sim"
)

// EventType classifies window events the viewer cares about.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DeltaX float32
	DeltaY float32
}

// Held keys act every frame they are down.
var heldKeys = []struct {
	key sdl.Scancode
	op  sim.Op
}{
	{sdl.SCANCODE_LEFT, sim.OpTurnLeft},
	{sdl.SCANCODE_RIGHT, sim.OpTurnRight},
	{sdl.SCANCODE_UP, sim.OpTiltUp},
	{sdl.SCANCODE_DOWN, sim.OpTiltDown},
	{sdl.SCANCODE_H, sim.OpTwistLeft},
	{sdl.SCANCODE_L, sim.OpTwistRight},
	{sdl.SCANCODE_J, sim.OpWalkForward},
	{sdl.SCANCODE_K, sim.OpWalkBackward},
	{sdl.SCANCODE_U, sim.OpRise},
	{sdl.SCANCODE_M, sim.OpSink},
}

// Pressed keys act once per key press.
var pressedKeys = map[sdl.Scancode]sim.Op{
	sdl.SCANCODE_SPACE:        sim.OpToggleMode,
	sdl.SCANCODE_LEFTBRACKET:  sim.OpPickup,
	sdl.SCANCODE_RIGHTBRACKET: sim.OpDrop,
	sdl.SCANCODE_N:            sim.OpNextPart,
	sdl.SCANCODE_Q:            sim.OpSlower,
	sdl.SCANCODE_W:            sim.OpFaster,
	sdl.SCANCODE_V:            sim.OpToggleBoxes,
	sdl.SCANCODE_S:            sim.OpSelectNearest,
}

var digitKeys = [10]sdl.Scancode{
	sdl.SCANCODE_0, sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4,
	sdl.SCANCODE_5, sdl.SCANCODE_6, sdl.SCANCODE_7, sdl.SCANCODE_8, sdl.SCANCODE_9,
}

// Input handles all input processing.
type Input struct {
	events   []Event
	commands []sim.Command
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		commands: make([]sim.Command, 0, 16),
	}
}

// Update polls SDL events and rebuilds this frame's commands.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.commands = i.commands[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				i.events = append(i.events, Event{Type: EventQuit})
				return true
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			i.keyDown(e.Keysym.Scancode)

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.State == sdl.PRESSED
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.events = append(i.events, Event{
					Type:   EventMouseDrag,
					DeltaX: float32(e.XRel),
					DeltaY: float32(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventMouseWheel, DeltaY: float32(e.Y)})
		}
	}

	i.poll(sdl.GetKeyboardState())
	return false
}

func (i *Input) keyDown(key sdl.Scancode) {
	if op, ok := pressedKeys[key]; ok {
		i.commands = append(i.commands, sim.Command{Op: op})
		return
	}
	for n, k := range digitKeys {
		if k == key {
			i.commands = append(i.commands, sim.Command{Op: sim.OpToggleSequence, Index: n})
			return
		}
	}
}

// poll emits commands for held keys. With neither walk key down the body
// is told to idle.
func (i *Input) poll(state []uint8) {
	down := func(k sdl.Scancode) bool {
		return int(k) < len(state) && state[k] != 0
	}
	for _, h := range heldKeys {
		if down(h.key) {
			i.commands = append(i.commands, sim.Command{Op: h.op})
		}
	}
	if !down(sdl.SCANCODE_J) && !down(sdl.SCANCODE_K) {
		i.commands = append(i.commands, sim.Command{Op: sim.OpIdle})
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Commands returns the commands from the last Update, in the order they
// should be applied.
func (i *Input) Commands() []sim.Command {
	return i.commands
}
