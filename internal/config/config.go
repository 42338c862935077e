// Package config loads drift settings: built-in defaults, overlaid by an
// optional TOML file, overlaid by command-line flags.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/drift/internal/field"
	"github.com/olivier-w/drift/internal/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backend names.
const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

// Display controls how the field reaches the terminal.
type Display struct {
	Backend     string  `toml:"backend"`
	Mode        string  `toml:"mode"`
	CellWidth   int     `toml:"cell_width"`
	CellHeight  int     `toml:"cell_height"`
	RefreshRate float64 `toml:"refresh_rate"`
	Background  string  `toml:"background"`
	HUD         bool    `toml:"hud"`
	Seed        int64   `toml:"seed"` // 0 seeds from the clock
}

type Config struct {
	Field   field.Config `toml:"field"`
	Display Display      `toml:"display"`
}

func Default() Config {
	return Config{
		Field: field.DefaultConfig(),
		Display: Display{
			Backend:     BackendTea,
			Mode:        render.ModeHalfBlock.String(),
			CellWidth:   8,
			CellHeight:  16,
			RefreshRate: 60,
			Background:  "#000000",
			HUD:         true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Keys the file sets that Config does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	d := c.Display
	switch d.Backend {
	case BackendTea, BackendTcell:
	default:
		return fmt.Errorf("%w: unknown backend %q (want %s or %s)", ErrInvalid, d.Backend, BackendTea, BackendTcell)
	}
	if _, err := render.ParseMode(d.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if d.CellWidth < 1 || d.CellHeight < 1 {
		return fmt.Errorf("%w: cell size must be at least 1x1, got %dx%d", ErrInvalid, d.CellWidth, d.CellHeight)
	}
	if !(d.RefreshRate > 0) {
		return fmt.Errorf("%w: refresh rate must be > 0, got %v", ErrInvalid, d.RefreshRate)
	}
	if _, err := d.BackgroundRGB(); err != nil {
		return err
	}
	return nil
}

// RenderOptions converts the display settings for render.NewRenderer.
func (d Display) RenderOptions() (render.Options, error) {
	mode, err := render.ParseMode(d.Mode)
	if err != nil {
		return render.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	bg, err := d.BackgroundRGB()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Mode:       mode,
		CellWidth:  d.CellWidth,
		CellHeight: d.CellHeight,
		Background: bg,
	}, nil
}

// BackgroundRGB parses the "#rrggbb" background color.
func (d Display) BackgroundRGB() (render.RGB, error) {
	c, err := colorful.Hex(d.Background)
	if err != nil || len(d.Background) != 7 {
		return render.RGB{}, fmt.Errorf("%w: background must be #rrggbb, got %q", ErrInvalid, d.Background)
	}
	r, g, b := c.RGB255()
	return render.RGB{R: r, G: g, B: b}, nil
}
