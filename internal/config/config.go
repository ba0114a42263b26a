// Package config loads facepull settings from an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/facepull/pkg/extrude"
	"github.com/taigrr/facepull/pkg/render"
	"github.com/taigrr/facepull/pkg/scene"
)

// Config holds every user-tunable setting. Zero values are not meaningful;
// start from Default.
type Config struct {
	Mode        string  `toml:"mode"`
	Step        float64 `toml:"step"`
	Sensitivity float64 `toml:"sensitivity"`
	Tolerance   float64 `toml:"tolerance"`
	UseTopology bool    `toml:"use_topology"`

	FPS         float64 `toml:"fps"`
	Background  string  `toml:"background"`
	BoxColor    string  `toml:"box_color"`
	SphereColor string  `toml:"sphere_color"`
}

// Default returns the built-in settings.
func Default() Config {
	pal := scene.DefaultPalette()
	return Config{
		Mode:        extrude.ModeScaledNormal.String(),
		Step:        extrude.DefaultStep,
		Sensitivity: extrude.DefaultSensitivity,
		FPS:         60,
		Background:  pal.Background.Hex(),
		BoxColor:    pal.Box.Hex(),
		SphereColor: pal.Sphere.Hex(),
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and parses the mode and colors.
func (c Config) Validate() error {
	var errs []error
	if _, err := extrude.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Step <= 0 {
		errs = append(errs, fmt.Errorf("step %v must be positive", c.Step))
	}
	if c.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sensitivity %v must be positive", c.Sensitivity))
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance %v must not be negative", c.Tolerance))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %v must be positive", c.FPS))
	}
	for _, s := range []string{c.Background, c.BoxColor, c.SphereColor} {
		if _, err := render.ParseHexColor(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SceneOptions converts the settings to scene options. It assumes Validate
// passed.
func (c Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	if m, err := extrude.ParseMode(c.Mode); err == nil {
		opts.Mode = m
	}
	opts.Step = c.Step
	opts.Sensitivity = c.Sensitivity
	opts.Tolerance = c.Tolerance
	opts.UseTopology = c.UseTopology
	return opts
}

// Palette returns the scene palette with the configured colors. Colors that
// fail to parse keep their defaults.
func (c Config) Palette() scene.Palette {
	pal := scene.DefaultPalette()
	if col, err := render.ParseHexColor(c.Background); err == nil {
		pal.Background = col
	}
	if col, err := render.ParseHexColor(c.BoxColor); err == nil {
		pal.Box = col
	}
	if col, err := render.ParseHexColor(c.SphereColor); err == nil {
		pal.Sphere = col
	}
	return pal
}
