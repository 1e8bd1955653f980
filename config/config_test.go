package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/draft"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Band() != draft.DefaultBand {
		t.Errorf("Band() = %+v, want %+v", cfg.Band(), draft.DefaultBand)
	}
	if !cfg.GridVisible || cfg.ActiveLayerOnly {
		t.Error("unexpected default flags")
	}
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvPath, writeFile(t, "units: metric\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Units != draft.UnitMetric {
		t.Errorf("Units = %v, want metric", cfg.Units)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeFile(t, `
units: fractional-inch
snap_tolerance_px: 12
active_layer_only: true
active_layer: Cut
language: de
grid:
  max_spacing_px: 120
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Units != draft.UnitFractionalInch {
		t.Errorf("Units = %v", cfg.Units)
	}
	if cfg.SnapTolerancePx != 12 || !cfg.ActiveLayerOnly || cfg.ActiveLayer != "Cut" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.GridVisible {
		t.Error("missing grid_visible should keep the default")
	}
	if want := (draft.LegibilityBand{MinPx: 8, MaxPx: 120}); cfg.Band() != want {
		t.Errorf("Band() = %+v, want %+v", cfg.Band(), want)
	}
	if cfg.LanguageTag() != language.German {
		t.Errorf("LanguageTag() = %v", cfg.LanguageTag())
	}
	if us := cfg.UnitSystem(); us.Family != draft.UnitFractionalInch || us.Band.MaxPx != 120 {
		t.Errorf("UnitSystem() = %+v", us)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown units", "units: furlong\n", "furlong"},
		{"negative tolerance", "snap_tolerance_px: -1\n", "snap_tolerance_px"},
		{"inverted band", "grid: {min_spacing_px: 50, max_spacing_px: 10}\n", "grid"},
		{"bad language", "language: \"!!\"\n", "language"},
		{"bad level", "log: {level: loud}\n", "log.level"},
		{"syntax", "units: [\n", "draft.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want fs.ErrNotExist", err)
	}
}

func TestSaveLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.Units = draft.UnitMetric
	want.ActiveLayer = "Engrave"
	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "units: metric") {
		t.Errorf("saved YAML:\n%s", data)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Load(Save(cfg)) = %+v, want %+v", got, want)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := LogConfig{Level: tt.in}.SlogLevel()
		if err != nil || got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}
