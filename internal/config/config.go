// Package config loads the viewer configuration: default overlay style and
// initial viewport settings.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"geoverlay/internal/render"
)

// Config represents the root configuration file structure.
type Config struct {
	Style render.Style `yaml:"style"`
	Zoom  float64      `yaml:"zoom,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Style: render.Style{
			Color:       "#E11D48",
			StrokeColor: "#1F2937",
			FillColor:   "#3B82F6",
			StrokeWidth: 1,
		},
		Zoom: 1,
	}
}

// Load reads the YAML file at path on top of Default. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = 1
	}

	return cfg, nil
}
