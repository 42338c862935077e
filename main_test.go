package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/drift/internal/config"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestParseArgsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift.toml")
	body := "[field]\nspacing = 30\npointer_radius = 40\n\n[display]\nmode = \"braille\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseArgs([]string{"-config", path, "-spacing", "25", "-backend", "tcell", "-no-hud", "-seed", "9"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Field.Spacing != 25 {
		t.Fatalf("expected flag spacing 25, got %v", cfg.Field.Spacing)
	}
	if cfg.Field.PointerRadius != 40 {
		t.Fatalf("expected file pointer radius 40, got %v", cfg.Field.PointerRadius)
	}
	if cfg.Display.Mode != "braille" {
		t.Fatalf("expected file mode kept when flag unset, got %q", cfg.Display.Mode)
	}
	if cfg.Display.Backend != config.BackendTcell || cfg.Display.HUD || cfg.Display.Seed != 9 {
		t.Fatalf("unexpected display %+v", cfg.Display)
	}
}

func TestParseArgsRejectsInvalidValues(t *testing.T) {
	_, err := parseArgs([]string{"-mode", "sixel"}, io.Discard)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := parseArgs([]string{"-spacing", "0.001"}, io.Discard); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected sub-pixel spacing to be rejected, got %v", err)
	}
	if _, err := parseArgs([]string{"extra"}, io.Discard); err == nil {
		t.Fatal("expected error for positional arguments")
	}
	if _, err := parseArgs([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}
