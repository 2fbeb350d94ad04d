// Package config handles editor configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all editor settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Editor   EditorConfig   `yaml:"editor"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Samples int  `yaml:"samples"` // MSAA sample count: 1, 2, 4 or 8
	VSync   bool `yaml:"vsync"`
}

// EditorConfig holds the initial editor state.
type EditorConfig struct {
	Depth       int     `yaml:"depth"` // initial subdivision depth
	Zoom        float32 `yaml:"zoom"`
	Perspective bool    `yaml:"perspective"`
	LightMix    float32 `yaml:"light_mix"`
}

// AssetsConfig holds texture asset file paths. Paths may point at PNG or TGA
// images; empty lists fall back to the built-in procedural palette.
type AssetsConfig struct {
	AtlasPaths []string `yaml:"atlas_paths"` // face texture atlas layers
	StitchPath string   `yaml:"stitch_path"` // debug output for the stitched atlas, empty disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:   1280,
			Height:  720,
			Samples: 4,
			VSync:   false,
		},
		Editor: EditorConfig{
			Depth:       1,
			Zoom:        1.0,
			Perspective: true,
			LightMix:    0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a Config from a YAML file, applying defaults for absent fields.
// A missing file is not an error: the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks settings that have a constrained domain.
func (c *Config) Validate() error {
	switch c.Graphics.Samples {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("config: invalid sample count %d (want 1, 2, 4 or 8)", c.Graphics.Samples)
	}
	if c.Editor.Depth < 0 {
		return fmt.Errorf("config: negative subdivision depth %d", c.Editor.Depth)
	}
	if c.Editor.Zoom < 0.1 || c.Editor.Zoom > 2.0 {
		return fmt.Errorf("config: zoom %g outside [0.1, 2.0]", c.Editor.Zoom)
	}
	return nil
}
