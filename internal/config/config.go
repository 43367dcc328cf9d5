// Package config loads viewer settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the viewer looks for its settings, relative to the
// working directory.
const DefaultPath = "config/viewer.yaml"

type Config struct {
	Window Window `yaml:"window"`
	Assets Assets `yaml:"assets"`
	Render Render `yaml:"render"`

	// Strict makes unknown materials and unresolvable material libraries
	// fail the load.
	Strict bool `yaml:"strict"`
}

type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	Vsync     bool   `yaml:"vsync"`
}

type Assets struct {
	// Root is a directory, an http(s) base URL, or empty for the bundled assets.
	Root string `yaml:"root"`
	Mesh string `yaml:"mesh"`
}

type Render struct {
	ClearColor [3]float32 `yaml:"clear_color"`
	ShowStats  bool       `yaml:"show_stats"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "meshview",
			Width:     1024,
			Height:    768,
			Resizable: true,
			Vsync:     true,
		},
		Assets: Assets{
			Mesh: "objects/cube.obj",
		},
		Render: Render{
			ClearColor: [3]float32{0.15, 0.15, 0.15},
			ShowStats:  true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Mesh == "" {
		return errors.New("assets.mesh is empty")
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("render.clear_color[%d]=%v outside [0, 1]", i, v)
		}
	}
	return nil
}

// Save writes c to path as YAML, creating parent directories as needed.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
