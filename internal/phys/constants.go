// Package phys provides the physical constants and geometry configuration
// for the 6D manifold. No arbitrary magic numbers at call sites — every
// coupling coefficient traces back to a named constant here.
package phys

// GoldenRatio is φ = (1 + √5) / 2.
const GoldenRatio = 1.618033988749895

// Core manifold constants. The derivations are heuristic, not verified
// physics; they define the geometry, nothing more.
const (
	// LambdaPhi is the Λ–Φ coupling constant [s⁻¹].
	// Planck time × φ⁷, scaled by a neural coherence factor.
	LambdaPhi = 2.176435e-8

	// ThetaLock is the torsion lock angle [degrees]: arctan(φ²) × 0.75.
	ThetaLock = 51.843

	// PhiThreshold is the coherence threshold for Ξ [bits].
	// φ⁴ + φ, adjusted downward.
	PhiThreshold = 7.6901

	// GammaFixed is the base decoherence rate: ~1/e^(φ²) with thermal
	// correction.
	GammaFixed = 0.092

	// ChiPC is the phase conjugate coupling efficiency:
	// sin(ThetaLock) × 1.105.
	ChiPC = 0.869
)

// Coordinate domain bounds.
const (
	// GammaMin keeps Γ strictly positive so Ξ = ΛΦ/Γ stays finite.
	GammaMin = 0.001

	// GammaHealing is the decoherence level above which a point needs
	// the healing transform.
	GammaHealing = 0.3
)

// Planck units, kept for dimensional cross-checks.
const (
	PlanckTime   = 5.391e-44 // seconds
	PlanckLength = 1.616e-35 // meters
	PlanckMass   = 2.176e-8  // kg — same order as LambdaPhi
)
