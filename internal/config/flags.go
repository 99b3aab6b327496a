package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFrames     = flag.Int("frames", 0, "Number of frames to simulate headless")
	flagRate       = flag.Float64("rate", 0, "Movement rate")
	flagModel      = flag.String("model", "", "Body model YAML file")
	flagLibrary    = flag.String("library", "", "Animation library YAML file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrames > 0 {
		cfg.Sim.Frames = *flagFrames
	}
	if *flagRate > 0 {
		cfg.Sim.MovementRate = float32(*flagRate)
	}
	if *flagModel != "" {
		cfg.Model.BodyPath = *flagModel
	}
	if *flagLibrary != "" {
		cfg.Model.LibraryPath = *flagLibrary
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
