package agents

import (
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

// Evolvable is the per-agent update rule. Implementations must be pure:
// take a point, return a new point inside the coordinate domain.
type Evolvable interface {
	Evolve(geometry.Point) geometry.Point
}

// ObserverBias integrates information: Φ grows with the coherence margin
// (Λ−Γ) while position otherwise stabilizes. Time advances slowly.
type ObserverBias struct{}

// Evolve applies Φ' = Φ + α(Λ − Γ) with slight Λ/ψ stabilization.
func (ObserverBias) Evolve(p geometry.Point) geometry.Point {
	newPhi := min(1, max(0, p.Phi+0.01*(p.Lambda-p.Gamma)))
	return geometry.NewPoint(
		p.Lambda*0.99+0.01*newPhi,
		newPhi,
		p.Gamma,
		p.Tau+phys.LambdaPhi,
		p.Epsilon,
		p.Psi*0.99+0.01,
	)
}

// ExecutorBias optimizes coherence: Λ moves with the normalized
// efficiency error (Ξ/Ξ_target − 1), Γ decays, entanglement grows.
// Time advances faster than for the observer.
type ExecutorBias struct{}

// Evolve applies Λ' = Λ + β(Ξ/Ξ_target − 1) and active Γ reduction.
func (ExecutorBias) Evolve(p geometry.Point) geometry.Point {
	xiRatio := p.Xi() / phys.PhiThreshold
	newLambda := min(1, max(0, p.Lambda+0.01*(xiRatio-1)))
	return geometry.NewPoint(
		newLambda,
		p.Phi,
		max(0.01, p.Gamma*0.99),
		p.Tau+phys.LambdaPhi*10,
		min(1, p.Epsilon*1.01),
		p.Psi,
	)
}
