// Package particle implements a single drifting particle: a steering
// integrator anchored to a fixed home point.
package particle

import (
	"math"

	"github.com/olivier-w/drift/internal/vecmath"
)

// Context is the subset of a 2D drawing surface a particle draws with.
type Context interface {
	SetFillStyle(color string)
	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool)
	ClosePath()
	Fill()
}

// Particle owns one particle's kinematic state.
type Particle struct {
	Current   vecmath.Vector2
	Velocity  vecmath.Vector2
	Direction float64 // radians, accumulates without wrapping

	home     vecmath.Vector2
	settings Settings
}

// New creates a particle resting at pos, which also becomes its home.
func New(pos vecmath.Vector2, direction float64, s Settings) (*Particle, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Particle{
		Current:   pos,
		Direction: direction,
		home:      pos,
		settings:  s,
	}, nil
}

// Home returns the anchor the particle is pulled back toward.
func (p *Particle) Home() vecmath.Vector2 { return p.home }

// Settings returns the particle's configuration.
func (p *Particle) Settings() Settings { return p.settings }

// Update advances the particle by exactly one tick.
func (p *Particle) Update(rng vecmath.Rand) {
	s := p.settings

	steer := vecmath.DirectionVector(p.Direction)
	p.Velocity = p.Velocity.Add(steer.Mul(s.SteeringForce))

	p.Direction += (rng.Float64()*2 - 1) * s.SteeringRandomness

	p.Velocity = p.Velocity.Add(p.restoringForce())

	p.Velocity = p.Velocity.Mul(s.Damping)
	p.Current = p.Current.Add(p.Velocity)
}

// restoringForce grows linearly with the distance from home and saturates at
// BoundaryForce once the particle is MovementRadius or more away.
func (p *Particle) restoringForce() vecmath.Vector2 {
	dist := vecmath.Distance(p.Current, p.home)
	if dist <= 0 {
		return vecmath.Vector2{}
	}
	toHome := vecmath.VectorTowards(p.Current, p.home)
	frac := math.Min(p.settings.MovementRadius, dist) / p.settings.MovementRadius
	return toHome.Mul(frac * p.settings.BoundaryForce)
}

// Render draws the particle as a filled circle.
func (p *Particle) Render(ctx Context) {
	ctx.SetFillStyle(p.settings.Color)
	ctx.BeginPath()
	ctx.Arc(p.Current.X, p.Current.Y, p.settings.Diameter/2, 0, 2*math.Pi, false)
	ctx.ClosePath()
	ctx.Fill()
}
