package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// The returned path is where Save will write; it is the file that was
// read, or the default location when none existed.
func Load() (*Config, string, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	savePath := configPath
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	} else {
		savePath = DefaultPath()
	}

	applyFlags(cfg)
	cfg.sanitize()

	return cfg, savePath, nil
}

// LoadFile reads a single config file over the defaults, without flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, err
	}
	cfg.sanitize()
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		DefaultPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// DefaultPath returns the config file location inside ConfigDir.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// sanitize replaces values the window manager cannot honour with defaults.
func (c *Config) sanitize() {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Graphics.GLMajor <= 0 {
		c.Graphics.GLMajor = def.Graphics.GLMajor
		c.Graphics.GLMinor = def.Graphics.GLMinor
	}
	if c.Graphics.VSync == "" {
		c.Graphics.VSync = def.Graphics.VSync
	}
	if c.App.AnimationSpeed <= 0 {
		c.App.AnimationSpeed = def.App.AnimationSpeed
	}
}
