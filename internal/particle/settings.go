package particle

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivier-w/drift/internal/vecmath"
)

// ErrInvalidSettings is returned when a particle configuration would break
// the integrator (for example a non-positive movement radius).
var ErrInvalidSettings = errors.New("invalid particle settings")

// Settings is the immutable per-particle configuration.
type Settings struct {
	Diameter           float64
	Color              string
	Damping            float64
	MovementRadius     float64
	SteeringForce      float64
	SteeringRandomness float64
	BoundaryForce      float64
}

// Validate reports the first field that is out of range.
func (s Settings) Validate() error {
	switch {
	case !finite(s.Diameter) || s.Diameter <= 0:
		return fmt.Errorf("%w: diameter must be > 0, got %v", ErrInvalidSettings, s.Diameter)
	case !finite(s.Damping) || s.Damping < 0 || s.Damping > 1:
		return fmt.Errorf("%w: damping must be in [0, 1], got %v", ErrInvalidSettings, s.Damping)
	case !finite(s.MovementRadius) || s.MovementRadius <= 0:
		return fmt.Errorf("%w: movement radius must be > 0, got %v", ErrInvalidSettings, s.MovementRadius)
	case !finite(s.SteeringForce) || s.SteeringForce < 0:
		return fmt.Errorf("%w: steering force must be >= 0, got %v", ErrInvalidSettings, s.SteeringForce)
	case !finite(s.SteeringRandomness) || s.SteeringRandomness < 0:
		return fmt.Errorf("%w: steering randomness must be >= 0, got %v", ErrInvalidSettings, s.SteeringRandomness)
	case !finite(s.BoundaryForce) || s.BoundaryForce < 0:
		return fmt.Errorf("%w: boundary force must be >= 0, got %v", ErrInvalidSettings, s.BoundaryForce)
	}
	return nil
}

// Range is a half-open interval [Min, Max). Min == Max pins the value.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Sample draws a value from the range.
func (r Range) Sample(rng vecmath.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return vecmath.UniformRange(rng, r.Min, r.Max)
}

func (r Range) valid() bool {
	return finite(r.Min) && finite(r.Max) && r.Max >= r.Min
}

// Defaults describes how settings are drawn for each particle of a field.
// Diameter, direction and movement radius vary per particle; the forces are
// shared.
type Defaults struct {
	Diameter           Range   `toml:"diameter"`
	Direction          Range   `toml:"direction"`
	MovementRadius     Range   `toml:"movement_radius"`
	Damping            float64 `toml:"damping"`
	SteeringForce      float64 `toml:"steering_force"`
	SteeringRandomness float64 `toml:"steering_randomness"`
	BoundaryForce      float64 `toml:"boundary_force"`
}

// DefaultDefaults returns the stock particle look: tiny dots that wander up
// to 10-60 units from home.
func DefaultDefaults() Defaults {
	return Defaults{
		Diameter:           Range{Min: 0.06, Max: 2.06},
		Direction:          Range{Min: 0, Max: math.Pi},
		MovementRadius:     Range{Min: 10, Max: 60},
		Damping:            0.85,
		SteeringForce:      0.1,
		SteeringRandomness: 0.25,
		BoundaryForce:      0.2,
	}
}

// Validate checks that every sample drawn from d is a valid Settings.
func (d Defaults) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"diameter", d.Diameter},
		{"direction", d.Direction},
		{"movement radius", d.MovementRadius},
	}
	for _, nr := range ranges {
		if !nr.r.valid() {
			return fmt.Errorf("%w: %s range [%v, %v) is malformed", ErrInvalidSettings, nr.name, nr.r.Min, nr.r.Max)
		}
	}
	// The lower bounds are the worst case for the strictly positive fields.
	sample := Settings{
		Diameter:           d.Diameter.Min,
		Damping:            d.Damping,
		MovementRadius:     d.MovementRadius.Min,
		SteeringForce:      d.SteeringForce,
		SteeringRandomness: d.SteeringRandomness,
		BoundaryForce:      d.BoundaryForce,
	}
	return sample.Validate()
}

// Sample draws settings and an initial heading for one particle.
func (d Defaults) Sample(rng vecmath.Rand, color string) (Settings, float64) {
	s := Settings{
		Diameter:           d.Diameter.Sample(rng),
		Color:              color,
		Damping:            d.Damping,
		MovementRadius:     d.MovementRadius.Sample(rng),
		SteeringForce:      d.SteeringForce,
		SteeringRandomness: d.SteeringRandomness,
		BoundaryForce:      d.BoundaryForce,
	}
	return s, d.Direction.Sample(rng)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
