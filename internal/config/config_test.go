package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/drift/internal/field"
	"github.com/olivier-w/drift/internal/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drift.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[field]
spacing = 30

[field.particle.movement_radius]
min = 5
max = 15

[display]
backend = "tcell"
mode = "braille"
seed = 42
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Spacing != 30 {
		t.Fatalf("expected spacing 30, got %v", cfg.Field.Spacing)
	}
	if r := cfg.Field.Particle.MovementRadius; r.Min != 5 || r.Max != 15 {
		t.Fatalf("expected movement radius [5, 15), got %+v", r)
	}
	if cfg.Display.Backend != BackendTcell || cfg.Display.Mode != "braille" || cfg.Display.Seed != 42 {
		t.Fatalf("unexpected display %+v", cfg.Display)
	}

	def := Default()
	if cfg.Field.PointerRadius != def.Field.PointerRadius {
		t.Fatalf("expected untouched pointer radius to keep its default, got %v", cfg.Field.PointerRadius)
	}
	if cfg.Field.Particle.Damping != def.Field.Particle.Damping {
		t.Fatalf("expected untouched damping to keep its default, got %v", cfg.Field.Particle.Damping)
	}
	if cfg.Display.RefreshRate != 60 || !cfg.Display.HUD {
		t.Fatalf("expected untouched display defaults, got %+v", cfg.Display)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[field]
spacing = 30
line_colour = "red"
`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "field.line_colour") {
		t.Fatalf("expected offending key in error, got %v", err)
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	if _, err := Load(writeConfig(t, "[field\nspacing = ")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"spacing", func(c *Config) { c.Field.Spacing = 0 }},
		{"sub-pixel spacing", func(c *Config) { c.Field.Spacing = 0.001 }},
		{"backend", func(c *Config) { c.Display.Backend = "sdl" }},
		{"mode", func(c *Config) { c.Display.Mode = "sixel" }},
		{"cell size", func(c *Config) { c.Display.CellHeight = 0 }},
		{"refresh rate", func(c *Config) { c.Display.RefreshRate = -1 }},
		{"background", func(c *Config) { c.Display.Background = "black" }},
		{"short background", func(c *Config) { c.Display.Background = "#000" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}

	cfg := Default()
	cfg.Field.Spacing = -1
	if err := cfg.Validate(); !errors.Is(err, field.ErrInvalidConfig) {
		t.Fatalf("expected field error to stay visible, got %v", err)
	}
}

func TestRenderOptions(t *testing.T) {
	d := Default().Display
	d.Mode = "ascii"
	d.Background = "#102030"
	opts, err := d.RenderOptions()
	if err != nil {
		t.Fatalf("RenderOptions: %v", err)
	}
	want := render.Options{Mode: render.ModeASCII, CellWidth: 8, CellHeight: 16, Background: render.RGB{R: 0x10, G: 0x20, B: 0x30}}
	if opts != want {
		t.Fatalf("got %+v, want %+v", opts, want)
	}
}
