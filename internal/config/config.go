// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/command-bridge/internal/bridge"
	"github.com/Faultbox/command-bridge/internal/starfield"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`

	path string
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"`     // Vertical field of view in degrees
	Samples    int     `yaml:"samples"` // MSAA samples, 0 disables

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig holds the bridge scene settings.
type SceneConfig struct {
	Mode       bridge.Mode `yaml:"mode"`
	StarCount  int         `yaml:"star_count"`
	StarSpread float32     `yaml:"star_spread"`
	Seed       int64       `yaml:"seed"` // 0 picks a seed from the clock
	DebugOrbit bool        `yaml:"debug_orbit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// WatchConfig controls reloading the config file while running.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        50,
			Samples:    4,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Mode:       bridge.ModeDark,
			StarCount:  starfield.DefaultCount,
			StarSpread: starfield.DefaultSpread,
			Seed:       0,
			DebugOrbit: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Watch: WatchConfig{
			Enabled: true,
		},
	}
}

// Validate replaces unusable values with defaults and rejects the rest.
func (c *Config) Validate() error {
	def := Default()

	if c.Graphics.Width <= 0 {
		c.Graphics.Width = def.Graphics.Width
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = def.Graphics.Height
	}
	if c.Graphics.FPSLimit < 0 {
		c.Graphics.FPSLimit = 0
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		c.Graphics.FOV = def.Graphics.FOV
	}
	if c.Graphics.Samples < 0 {
		c.Graphics.Samples = 0
	}

	if c.Scene.Mode == "" {
		c.Scene.Mode = def.Scene.Mode
	}
	mode, err := bridge.ParseMode(string(c.Scene.Mode))
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	c.Scene.Mode = mode
	// Non-positive star settings are allowed and produce an empty sky.
	return nil
}
