package inspector

import (
	"fmt"
	gomath "math"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/pkg/math"
)

var (
	colorHeld   = imgui.NewVec4(0.4, 0.9, 0.4, 1)
	colorStatus = imgui.NewVec4(0.9, 0.8, 0.4, 1)
)

func (a *App) panel() {
	ctx := a.ctx

	imgui.Text(fmt.Sprintf("Mode: %s", ctx.Mode))
	imgui.SameLine()
	if imgui.Button("Toggle") {
		ctx.Apply(sim.Command{Op: sim.OpToggleMode})
	}
	imgui.Text("Rate")
	imgui.SameLine()
	imgui.SliderFloatV("##rate", &ctx.Rate, 0, 10, "%.2f", imgui.SliderFlagsNone)
	imgui.Checkbox("Boxes", &ctx.ShowBoxes)
	imgui.TextDisabled(fmt.Sprintf("frame %v, speed factor %.2f", a.rate.Target(), a.rate.SpeedFactor()))

	imgui.Separator()
	if imgui.TreeNodeExStrV("Parts", imgui.TreeNodeFlagsDefaultOpen) {
		a.parts()
		imgui.TreePop()
	}
	if imgui.TreeNodeExStrV("Sequences", imgui.TreeNodeFlagsDefaultOpen) {
		a.sequences()
		imgui.TreePop()
	}
	if imgui.TreeNodeExStrV("Objects", imgui.TreeNodeFlagsDefaultOpen) {
		a.objects()
		imgui.TreePop()
	}
	if imgui.TreeNodeExStrV("Pose", imgui.TreeNodeFlagsNone) {
		a.pose()
		imgui.TreePop()
	}

	if a.status != "" {
		imgui.Separator()
		imgui.TextColored(colorStatus, a.status)
	}
}

// parts lists the segments; the selected one receives rotate commands.
func (a *App) parts() {
	if imgui.SelectableBoolV("whole body", a.ctx.Current == sim.WholeBody, 0, imgui.NewVec2(0, 0)) {
		a.ctx.Current = sim.WholeBody
	}
	for p := rig.Part(0); p < rig.NumParts; p++ {
		if imgui.SelectableBoolV(p.String(), a.ctx.Current == p, 0, imgui.NewVec2(0, 0)) {
			a.ctx.Current = p
		}
	}
}

func (a *App) sequences() {
	if !imgui.BeginTable("sequences", 4) {
		return
	}
	for _, seq := range a.ctx.Library.Sequences() {
		name := seq.Name()
		imgui.TableNextRow()

		imgui.TableNextColumn()
		if seq.Active() {
			imgui.TextColored(colorHeld, name)
		} else {
			imgui.Text(name)
		}

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d/%d", seq.Cursor(), seq.Len()))

		imgui.TableNextColumn()
		looped := seq.Looped()
		if imgui.Checkbox("loop##"+name, &looped) {
			if looped {
				seq.Loop()
			} else {
				seq.Unloop()
			}
		}

		imgui.TableNextColumn()
		if seq.Active() {
			if imgui.Button("stop##" + name) {
				seq.Stop()
			}
		} else if imgui.Button("start##" + name) {
			seq.Start()
		}
	}
	imgui.EndTable()
}

func (a *App) objects() {
	ctx := a.ctx
	if h, ok := ctx.Held(); ok {
		imgui.TextColored(colorHeld, "Holding "+h.String())
		if imgui.Button("Drop") {
			ctx.Apply(sim.Command{Op: sim.OpDrop})
		}
	} else {
		imgui.TextDisabled("Hands empty")
		if imgui.Button("Pick up") {
			ctx.Apply(sim.Command{Op: sim.OpPickup})
		}
	}
	imgui.SameLine()
	if imgui.Button("Spawn crate") {
		at := ctx.GripPoint().Add(ctx.Skeleton.Heading().Scale(0.4))
		ctx.Arena.Insert(physics.NewKinematicBody(at, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	}

	sel := ctx.Selected()
	imgui.Text(fmt.Sprintf("Selected: %d", len(sel)))
	for _, h := range sel {
		imgui.Text("  " + h.String())
	}
	if len(sel) > 0 && imgui.Button("Clear selection") {
		ctx.ClearSelection()
	}
}

// pose shows each segment's world pivot and rotation in degrees.
func (a *App) pose() {
	if !imgui.BeginTable("pose", 3) {
		return
	}
	for _, p := range a.ctx.Pose() {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(p.Part.String())
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.2f %.2f %.2f", p.Position.X, p.Position.Y, p.Position.Z))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.1f deg about %s", p.Angle*180/gomath.Pi, p.Axis))
	}
	imgui.EndTable()
}
