// Package config holds the drafting settings supplied by the host
// application and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/draft"
)

// EnvPath names the environment variable consulted by Load when no path
// is given.
const EnvPath = "DRAFT_CONFIG"

// Config is the configuration consumed by the drafting core.
type Config struct {
	// Units selects the grid spacing table and label format.
	Units draft.UnitFamily `yaml:"units"`

	// SnapTolerancePx is the snap search radius in device pixels.
	SnapTolerancePx float64 `yaml:"snap_tolerance_px"`

	// ActiveLayerOnly restricts snapping to the active layer.
	ActiveLayerOnly bool `yaml:"active_layer_only"`

	// GridVisible suppresses grid snapping when false.
	GridVisible bool `yaml:"grid_visible"`

	// ActiveLayer is a layer id or name. Empty keeps the current active
	// layer, or selects the first layer when none is active.
	ActiveLayer string `yaml:"active_layer,omitempty"`

	// Language is the BCP 47 tag used for ruler labels.
	Language string `yaml:"language"`

	Grid GridConfig `yaml:"grid"`
	Log  LogConfig  `yaml:"log"`
}

// GridConfig bounds the on-screen spacing of grid lines.
type GridConfig struct {
	MinSpacingPx float64 `yaml:"min_spacing_px"`
	MaxSpacingPx float64 `yaml:"max_spacing_px"`
}

// LogConfig configures the logger installed by the demo CLI.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Units:           draft.UnitDecimalInch,
		SnapTolerancePx: 8,
		GridVisible:     true,
		Language:        "en",
		Grid: GridConfig{
			MinSpacingPx: draft.DefaultBand.MinPx,
			MaxSpacingPx: draft.DefaultBand.MaxPx,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads a YAML configuration file over the defaults, so keys missing
// from the file keep their default values. If path is empty the EnvPath
// environment variable is used, and when that is empty too Load returns
// Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Save writes cfg to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if !c.Units.Valid() {
		errs = append(errs, fmt.Errorf("units: unknown family %d", c.Units))
	}
	if !(c.SnapTolerancePx >= 0) || math.IsInf(c.SnapTolerancePx, 0) {
		errs = append(errs, fmt.Errorf("snap_tolerance_px: must be a non-negative number, got %g", c.SnapTolerancePx))
	}
	if err := c.Band().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grid: %w", err))
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Band returns the grid legibility band.
func (c Config) Band() draft.LegibilityBand {
	return draft.LegibilityBand{MinPx: c.Grid.MinSpacingPx, MaxPx: c.Grid.MaxSpacingPx}
}

// UnitSystem returns the unit family with its legibility band.
func (c Config) UnitSystem() draft.UnitSystem {
	return draft.UnitSystem{Family: c.Units, Band: c.Band()}
}

// LanguageTag returns the parsed label language, or English when the tag
// is invalid.
func (c Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// SlogLevel parses Level. An empty level means warn.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(l.Level))
	return lvl, err
}
