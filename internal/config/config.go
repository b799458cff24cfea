// Package config handles viewer configuration loading and persistence.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	App      AppConfig      `yaml:"app"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds the window geometry restored on startup.
type WindowConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	PosX      *int `yaml:"pos_x,omitempty"` // nil lets the OS decide
	PosY      *int `yaml:"pos_y,omitempty"`
	Maximized bool `yaml:"maximized"`
}

// GraphicsConfig holds context and presentation settings.
type GraphicsConfig struct {
	Title   string `yaml:"title"`
	GLMajor int    `yaml:"gl_major"`
	GLMinor int    `yaml:"gl_minor"`
	// VSync is one of "off", "on", "adaptive" or "auto". The default is
	// "off" so presenting never waits on the display.
	VSync string `yaml:"vsync"`
	// NoVSyncDrivers lists video drivers where "auto" turns vsync off.
	NoVSyncDrivers []string `yaml:"no_vsync_drivers"`
}

// AppConfig holds application preferences.
type AppConfig struct {
	LastFile       string  `yaml:"last_file,omitempty"`
	AutoPlay       bool    `yaml:"auto_play"`
	AnimationSpeed float32 `yaml:"animation_speed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		Graphics: GraphicsConfig{
			Title:          AppName,
			GLMajor:        4,
			GLMinor:        1,
			VSync:          "off",
			NoVSyncDrivers: []string{"wayland"},
		},
		App: AppConfig{
			AnimationSpeed: 1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetWindowSize records the current window size.
func (c *Config) SetWindowSize(width, height int) {
	c.Window.Width = width
	c.Window.Height = height
}

// SetWindowPos records the current window position.
func (c *Config) SetWindowPos(x, y int) {
	c.Window.PosX = &x
	c.Window.PosY = &y
}
