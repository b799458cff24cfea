package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagMaximized = flag.Bool("maximized", false, "Start maximized")
	flagVSync     = flag.String("vsync", "", "VSync policy: off, on, adaptive or auto")
	flagPlay      = flag.Bool("play", false, "Start with the animation playing")
	flagVersion   = flag.Bool("version", false, "Print version and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ShowVersion reports whether --version was given.
func ShowVersion() bool {
	return *flagVersion
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMaximized {
		cfg.Window.Maximized = true
	}
	if *flagVSync != "" {
		cfg.Graphics.VSync = *flagVSync
	}
	if *flagPlay {
		cfg.App.AutoPlay = true
	}
}
