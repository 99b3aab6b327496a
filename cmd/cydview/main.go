// Package main is the interactive viewer: the body is drawn as wireframe
// boxes and driven from the keyboard.
//
//	arrows, h, l   rotate the selected part (or the whole body)
//	j, k           walk forward / backward
//	u, m           rise / sink
//	n              select next part
//	q, w           slower / faster
//	space          toggle collision / selection mode
//	s              select the nearest loose object
//	[, ]           pick up / drop
//	v              toggle boxes / bones
//	0-9            toggle an animation sequence
package main

import (
	"fmt"
	gomath "math"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/input"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/internal/viewer"
	"github.com/Faultbox/cydsim/internal/viewer/scene"
	"github.com/Faultbox/cydsim/internal/window"
	"github.com/Faultbox/cydsim/pkg/math"
)

const windowTitle = "cydsim"

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cydsim viewer ===")

	ctx, err := sim.Load(cfg)
	if err != nil {
		logger.Fatal("failed to set up simulation", zap.Error(err))
	}
	spawnCrates(ctx)

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		logger.Fatal("window creation failed", zap.Error(err))
	}
	defer win.Close()

	renderer, err := viewer.NewRenderer(win.Size())
	if err != nil {
		logger.Fatal("renderer creation failed", zap.Error(err))
	}
	defer renderer.Close()

	loop(ctx, win, renderer, sim.NewFrameRate(cfg.Sim.TargetFPS))
	logger.Info("viewer closed normally")
}

// spawnCrates places a row of loose boxes in front of the body.
func spawnCrates(ctx *sim.Context) {
	for i := -1; i <= 1; i++ {
		at := math.Vec3{X: float32(i) * 0.6, Y: -1.2, Z: 0.1}
		ctx.Arena.Insert(physics.NewKinematicBody(at, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	}
}

func loop(ctx *sim.Context, win *window.Window, renderer *viewer.Renderer, rate *sim.FrameRate) {
	in := input.New()
	cam := scene.NewOrbitCamera()
	var lines scene.Lines
	shown := ""

	for {
		start := time.Now()
		if in.Update() {
			return
		}
		for _, e := range in.Events() {
			switch e.Type {
			case input.EventWindowResize:
				renderer.Resize(e.Width, e.Height)
			case input.EventMouseDrag:
				cam.HandleDrag(e.DeltaX, e.DeltaY)
			case input.EventMouseWheel:
				cam.HandleZoom(e.DeltaY)
			}
		}
		for _, cmd := range in.Commands() {
			ctx.Apply(cmd)
		}

		if t := title(ctx); t != shown {
			win.SetTitle(t)
			shown = t
		}

		ctx.Frame(rate.SpeedFactor())
		cam.Follow(ctx.Skeleton.RootMatrix().Translation())

		lines.Reset()
		lines.Grid(5, 0.5)
		lines.Body(ctx)
		lines.Objects(ctx)

		proj := math.Perspective(gomath.Pi/4, renderer.Aspect(), 0.05, 100)
		renderer.Begin()
		renderer.DrawLines(&lines, proj.Mul(cam.ViewMatrix()))
		win.SwapBuffers()

		// Hold the target rate when vsync is off.
		if spare := rate.Target() - time.Since(start); spare > 0 {
			time.Sleep(spare)
		}
		rate.Update(time.Now())
	}
}

func title(ctx *sim.Context) string {
	part := "body"
	if ctx.Current != sim.WholeBody {
		part = ctx.Current.String()
	}
	return fmt.Sprintf("%s - %s - %s mode - rate %.2f", windowTitle, part, ctx.Mode, ctx.Rate)
}
