// Package main is the ImGui inspector: the body in a 3D view with panels for
// parts, rate, sequences, carried objects and the current pose. Body models
// and animation libraries can be opened from the File menu.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/config"
	"github.com/Faultbox/cydsim/internal/inspector"
	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/sim"
)

func main() {
	runtime.LockOSThread()

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

	logger.Info("=== cydsim inspector ===")

	ctx, err := sim.Load(cfg)
	if err != nil {
		logger.Fatal("failed to set up simulation", zap.Error(err))
	}

	app, err := inspector.New(cfg, ctx)
	if err != nil {
		logger.Fatal("inspector creation failed", zap.Error(err))
	}
	defer app.Close()

	app.Run()
	logger.Info("inspector closed normally")
}
