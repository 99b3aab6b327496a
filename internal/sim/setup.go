package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/anim"
	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
)

// Load builds a ready-to-run context from configuration. The body model and
// animation library fall back to the built-in ones when no path is set.
// Every component gets a kinematic proxy.
func Load(cfg *config.Config) (*Context, error) {
	model := rig.DefaultModel()
	if path := cfg.Model.BodyPath; path != "" {
		m, err := rig.LoadModel(path)
		if err != nil {
			return nil, fmt.Errorf("loading body model: %w", err)
		}
		model = m
		logger.Info("body model loaded", zap.String("path", path))
	}

	skel, err := rig.New(model)
	if err != nil {
		logger.Error("invalid skeleton topology", zap.Error(err))
		return nil, fmt.Errorf("building skeleton: %w", err)
	}
	skel.Transform.Offset.Z = cfg.Sim.GroundOffset

	var lib *anim.Library
	if path := cfg.Model.LibraryPath; path != "" {
		lib, err = anim.LoadLibrary(path, skel)
		if err == nil {
			logger.Info("animation library loaded", zap.String("path", path))
		}
	} else {
		lib, err = anim.DefaultLibrary(skel)
	}
	if err != nil {
		return nil, fmt.Errorf("building animation library: %w", err)
	}

	arena := physics.NewArena()
	sync := physics.NewSync(arena)
	sync.Populate(model, func(_ rig.Component, b rig.Bounds) physics.Body {
		return physics.NewKinematicBody(b.Center(), b.Size())
	})

	c := New(cfg.Sim, skel, lib, arena, sync)
	c.Skeleton.Recompute()
	// Pose the proxies now so the first world step sees them in place.
	c.Sync.Run(c.Skeleton)
	return c, nil
}
