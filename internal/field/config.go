package field

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/olivier-w/drift/internal/particle"
)

// ErrInvalidConfig is returned by New and Config.Validate for layout
// parameters the field cannot run with.
var ErrInvalidConfig = errors.New("invalid field config")

// MinSpacing is the smallest grid spacing accepted. Finer grids would put
// more than one particle per surface pixel.
const MinSpacing = 1.0

// Config holds the layout and pacing parameters of a field. It is fixed for
// the lifetime of the Field.
type Config struct {
	Spacing         float64           `toml:"spacing"`
	PointerRadius   float64           `toml:"pointer_radius"`
	LineRadius      float64           `toml:"line_radius"`
	LineWidth       float64           `toml:"line_width"`
	FrameIntervalMS float64           `toml:"frame_interval_ms"`
	Particle        particle.Defaults `toml:"particle"`
}

// DefaultConfig returns a 50-unit grid paced at one tick per 10ms.
func DefaultConfig() Config {
	return Config{
		Spacing:         50,
		PointerRadius:   100,
		LineRadius:      100,
		LineWidth:       1,
		FrameIntervalMS: 10,
		Particle:        particle.DefaultDefaults(),
	}
}

// FrameInterval is the minimum time between two executed ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS * float64(time.Millisecond))
}

func (c Config) Validate() error {
	switch {
	case !(c.Spacing >= MinSpacing) || math.IsInf(c.Spacing, 1):
		return fmt.Errorf("%w: spacing must be finite and >= %v, got %v", ErrInvalidConfig, MinSpacing, c.Spacing)
	case !(c.PointerRadius >= 0):
		return fmt.Errorf("%w: pointer radius must be >= 0, got %v", ErrInvalidConfig, c.PointerRadius)
	case !(c.LineRadius >= 0):
		return fmt.Errorf("%w: line radius must be >= 0, got %v", ErrInvalidConfig, c.LineRadius)
	case !(c.LineWidth >= 0):
		return fmt.Errorf("%w: line width must be >= 0, got %v", ErrInvalidConfig, c.LineWidth)
	case !(c.FrameIntervalMS >= 0):
		return fmt.Errorf("%w: frame interval must be >= 0, got %v", ErrInvalidConfig, c.FrameIntervalMS)
	}
	if err := c.Particle.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
