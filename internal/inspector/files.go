package inspector

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/sim"
)

// fileKind says which data file a picked path replaces.
type fileKind int

const (
	bodyModel fileKind = iota
	animLibrary
)

func (k fileKind) String() string {
	if k == animLibrary {
		return "animation library"
	}
	return "body model"
}

type pick struct {
	kind fileKind
	path string
}

// openDialog asks for a YAML file without blocking the frame loop. The
// result is delivered on picked and applied by the render loop, which owns
// the GL context.
func (a *App) openDialog(kind fileKind) {
	go func() {
		path, err := dialog.File().
			Filter("YAML files", "yaml", "yml").
			Filter("All files", "*").
			Title("Open " + kind.String()).
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		a.picked <- pick{kind: kind, path: path}
	}()
}

// withPath returns a copy of cfg with the data file for kind replaced.
func withPath(cfg *config.Config, kind fileKind, path string) *config.Config {
	next := *cfg
	switch kind {
	case bodyModel:
		next.Model.BodyPath = path
	case animLibrary:
		next.Model.LibraryPath = path
	}
	return &next
}

// reload rebuilds the simulation from the picked file. On failure the
// running simulation is kept.
func (a *App) reload(p pick) {
	cfg := withPath(a.cfg, p.kind, p.path)
	ctx, err := sim.Load(cfg)
	if err != nil {
		logger.Error("reload failed", zap.Stringer("kind", p.kind), zap.String("path", p.path), zap.Error(err))
		a.status = "could not load " + p.path + ": " + err.Error()
		return
	}
	a.cfg = cfg
	a.ctx = ctx
	a.status = "loaded " + p.kind.String() + " " + p.path
	logger.Info("simulation reloaded", zap.Stringer("kind", p.kind), zap.String("path", p.path))
}

// saveSettings writes the current settings, including the live rate, to the
// user's config file.
func (a *App) saveSettings() {
	a.cfg.Sim.MovementRate = a.ctx.Rate
	if err := a.cfg.Save(); err != nil {
		logger.Error("saving settings failed", zap.Error(err))
		a.status = "save failed: " + err.Error()
		return
	}
	a.status = "settings saved to " + config.ConfigDir()
}
