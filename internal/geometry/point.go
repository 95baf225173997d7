// Package geometry implements the 6D manifold: the position-dependent
// metric, connection and curvature tensors derived by numerical
// differentiation, geodesic paths via a shooting method, and entropic
// optimal transport between weighted point sets.
//
// Coordinates:
//
//	Λ (Lambda)  : coherence        [0,1]
//	Φ (Phi)     : information      [0,1]
//	Γ (Gamma)   : decoherence rate [0.001,1]
//	τ (Tau)     : proper time      ≥ 0
//	ε (Epsilon) : entanglement     [0,1]
//	ψ (Psi)     : phase            [0,1]
package geometry

import (
	"errors"
	"fmt"

	"github.com/talgya/manifold/internal/phys"
)

// Dim is the number of manifold coordinates.
const Dim = 6

// ErrBadVector is returned when deserializing a point from the wrong
// number of scalars.
var ErrBadVector = errors.New("geometry: point requires exactly 6 coordinates")

// Point is a position on the manifold. Geometry routines treat points as
// immutable values: they take a Point and return new values, never
// mutating in place.
type Point struct {
	Lambda  float64 `json:"lambda"`
	Phi     float64 `json:"phi"`
	Gamma   float64 `json:"gamma"`
	Tau     float64 `json:"tau"`
	Epsilon float64 `json:"epsilon"`
	Psi     float64 `json:"psi"`
}

// NewPoint constructs a point, clamping each coordinate into its domain.
func NewPoint(lambda, phi, gamma, tau, epsilon, psi float64) Point {
	return Point{
		Lambda:  clamp(lambda, 0, 1),
		Phi:     clamp(phi, 0, 1),
		Gamma:   clamp(gamma, phys.GammaMin, 1),
		Tau:     max(tau, 0),
		Epsilon: clamp(epsilon, 0, 1),
		Psi:     clamp(psi, 0, 1),
	}
}

// DefaultPoint returns the canonical spawn position: high coherence, low
// decoherence.
func DefaultPoint() Point {
	return NewPoint(0.95, 0.85, 0.1, 0, 0.7, 0.9)
}

// PointFromVector builds a point from a 6-vector, clamping into domain.
func PointFromVector(v [Dim]float64) Point {
	return NewPoint(v[0], v[1], v[2], v[3], v[4], v[5])
}

// PointFromSlice deserializes a point from exactly six scalars. This is
// the only operation in the package that can fail on input shape.
func PointFromSlice(v []float64) (Point, error) {
	if len(v) != Dim {
		return Point{}, fmt.Errorf("%w: got %d", ErrBadVector, len(v))
	}
	return NewPoint(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}

// Vector returns the point's coordinates as a 6-vector.
func (p Point) Vector() [Dim]float64 {
	return [Dim]float64{p.Lambda, p.Phi, p.Gamma, p.Tau, p.Epsilon, p.Psi}
}

// Xi is the negentropic efficiency Ξ = ΛΦ/Γ. Γ is floored at GammaMin so
// the ratio stays finite even for points built directly from literals.
func (p Point) Xi() float64 {
	return (p.Lambda * p.Phi) / max(p.Gamma, phys.GammaMin)
}

// Coherent reports whether the point sits in the coherent region,
// Ξ ≥ PhiThreshold.
func (p Point) Coherent() bool {
	return p.Xi() >= phys.PhiThreshold
}

// NeedsHealing reports whether decoherence exceeds the healing threshold.
func (p Point) NeedsHealing() bool {
	return p.Gamma > phys.GammaHealing
}

func (p Point) String() string {
	return fmt.Sprintf("Point(Λ=%.3f, Φ=%.3f, Γ=%.3f, τ=%.3f, ε=%.3f, ψ=%.3f, Ξ=%.3f)",
		p.Lambda, p.Phi, p.Gamma, p.Tau, p.Epsilon, p.Psi, p.Xi())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
