// Package main runs the body simulation without a display. It walks the body
// forward, raises its arms, picks up a crate and carries it, logging the
// pose as it goes.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/sim"
	"github.com/Faultbox/cydsim/pkg/math"
)

const reportEvery = 60

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

	logger.Info("=== cydsim (headless) ===", zap.Int("frames", cfg.Sim.Frames))

	ctx, err := sim.Load(cfg)
	if err != nil {
		logger.Fatal("failed to set up simulation", zap.Error(err))
	}

	// Place the crate where the first walk ends.
	walk := cfg.Sim.LinearDeltaScale * cfg.Sim.MovementRate * float32(cfg.Sim.Frames/2)
	crate := spawnCrate(ctx, walk+0.3)
	run(ctx, cfg.Sim.Frames)

	if b, ok := ctx.Arena.Get(crate); ok {
		kb := b.(*physics.KinematicBody)
		logger.Info("crate final", zap.Stringer("position", kb.Position), zap.Bool("disabled", kb.Disabled))
	}
	reportPose(ctx)
}

// spawnCrate drops a small box ahead of the hands.
func spawnCrate(ctx *sim.Context, ahead float32) physics.Handle {
	at := ctx.GripPoint().Add(ctx.Skeleton.Heading().Scale(ahead))
	h := ctx.Arena.Insert(physics.NewKinematicBody(at, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	logger.Info("crate spawned", zap.Stringer("handle", h), zap.Stringer("position", at))
	return h
}

// run plays a fixed script: walk, stop and raise the arms, grab the nearest
// object once the arms are up, walk with it and put it down at the end.
func run(ctx *sim.Context, frames int) {
	half := frames / 2
	pickupAt := half + 100

	for f := 0; f < frames; f++ {
		switch {
		case f < half:
			ctx.Apply(sim.Command{Op: sim.OpWalkForward})
		case f == half:
			ctx.Apply(sim.Command{Op: sim.OpIdle})
			ctx.Apply(sim.Command{Op: sim.OpToggleMode})
			ctx.Apply(sim.Command{Op: sim.OpSelectNearest})
		case f == pickupAt:
			ctx.Apply(sim.Command{Op: sim.OpPickup})
		case f > pickupAt && f < frames-1:
			ctx.Apply(sim.Command{Op: sim.OpWalkForward})
		case f == frames-1:
			ctx.Apply(sim.Command{Op: sim.OpIdle})
			ctx.Apply(sim.Command{Op: sim.OpDrop})
		default:
			ctx.Apply(sim.Command{Op: sim.OpIdle})
		}

		report := ctx.Frame(1)
		if len(report.Skipped) > 0 {
			logger.Warn("proxies skipped", zap.Int("frame", f), zap.Int("count", len(report.Skipped)))
		}
		if f%reportEvery == 0 {
			_, holding := ctx.Held()
			logger.Info("frame",
				zap.Int("frame", f),
				zap.Stringer("position", ctx.Skeleton.Transform.Position()),
				zap.Float32("speed", ctx.Skeleton.Speed),
				zap.Stringer("mode", ctx.Mode),
				zap.Bool("holding", holding),
				zap.Int("synced", report.Synced),
			)
		}
	}
}

func reportPose(ctx *sim.Context) {
	for _, p := range ctx.Pose() {
		logger.Info("pose",
			zap.String("part", p.Part.String()),
			zap.Stringer("position", p.Position),
			zap.Stringer("axis", p.Axis),
			zap.Float32("angle", p.Angle),
		)
	}
}
