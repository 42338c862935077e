// Package vecmath holds the 2D vector helpers used by the particle physics.
package vecmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vector2 is a 2D point or direction.
type Vector2 = r2.Point

// Rand is the random source the simulation draws from. Float64 returns a
// value in [0, 1).
type Rand interface {
	Float64() float64
}

// Vec builds a Vector2.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2) float64 {
	return b.Sub(a).Norm()
}

// AngleBetween returns atan2(from.Y-to.Y, from.X-to.X), in (-π, π].
func AngleBetween(from, to Vector2) float64 {
	return math.Atan2(from.Y-to.Y, from.X-to.X)
}

// DirectionVector returns the unit vector pointing along angle.
func DirectionVector(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// VectorTowards returns the unit vector pointing from from to to.
// When from == to the result is (-1, ~0).
func VectorTowards(from, to Vector2) Vector2 {
	return DirectionVector(AngleBetween(from, to) - math.Pi)
}

// RandomSign returns -1 or +1 with equal probability.
func RandomSign(rng Rand) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

// UniformRange returns a value drawn uniformly from [lo, hi).
func UniformRange(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
