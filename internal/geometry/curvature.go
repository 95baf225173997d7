package geometry

import (
	"math"

	"github.com/talgya/manifold/internal/phys"
)

// Tensor4 holds the Riemann tensor R^ρ_σμν indexed [ρ][σ][μ][ν].
type Tensor4 [Dim][Dim][Dim][Dim]float64

// Curvature derives the Riemann tensor and its contractions by finite
// differences of the connection field. These are the most expensive
// operations in the package — O(6⁵)–O(6⁶) floating-point work per call.
type Curvature struct {
	metric      *MetricTensor
	christoffel *Christoffel
	step        float64
}

// NewCurvature builds a curvature calculator over the given metric.
func NewCurvature(metric *MetricTensor, cfg phys.Config) *Curvature {
	return &Curvature{
		metric:      metric,
		christoffel: NewChristoffel(metric, cfg),
		step:        cfg.CurvatureStep,
	}
}

// Riemann computes R^ρ_σμν = ∂_μ Γ^ρ_νσ − ∂_ν Γ^ρ_μσ
// + Γ^ρ_μλ Γ^λ_νσ − Γ^ρ_νλ Γ^λ_μσ at a point.
func (c *Curvature) Riemann(p Point) Tensor4 {
	gamma := c.christoffel.Compute(p)
	base := p.Vector()

	// dGamma[μ][ρ][ν][σ] = ∂_μ Γ^ρ_νσ, central differences.
	var dGamma Tensor4
	for mu := 0; mu < Dim; mu++ {
		plus, minus := base, base
		plus[mu] += c.step
		minus[mu] -= c.step

		gPlus := c.christoffel.Compute(PointFromVector(plus))
		gMinus := c.christoffel.Compute(PointFromVector(minus))

		for rho := 0; rho < Dim; rho++ {
			for nu := 0; nu < Dim; nu++ {
				for sigma := 0; sigma < Dim; sigma++ {
					dGamma[mu][rho][nu][sigma] =
						(gPlus[rho][nu][sigma] - gMinus[rho][nu][sigma]) / (2 * c.step)
				}
			}
		}
	}

	var r Tensor4
	for rho := 0; rho < Dim; rho++ {
		for sigma := 0; sigma < Dim; sigma++ {
			for mu := 0; mu < Dim; mu++ {
				for nu := 0; nu < Dim; nu++ {
					val := dGamma[mu][rho][nu][sigma] - dGamma[nu][rho][mu][sigma]
					for lam := 0; lam < Dim; lam++ {
						val += gamma[rho][mu][lam]*gamma[lam][nu][sigma] -
							gamma[rho][nu][lam]*gamma[lam][mu][sigma]
					}
					r[rho][sigma][mu][nu] = val
				}
			}
		}
	}
	return r
}

// Ricci contracts the Riemann tensor over its first and third indices:
// R_μν = R^ρ_μρν.
func (c *Curvature) Ricci(p Point) Matrix {
	r := c.Riemann(p)
	var ricci Matrix
	for mu := 0; mu < Dim; mu++ {
		for nu := 0; nu < Dim; nu++ {
			sum := 0.0
			for rho := 0; rho < Dim; rho++ {
				sum += r[rho][mu][rho][nu]
			}
			ricci[mu][nu] = sum
		}
	}
	return ricci
}

// ScalarCurvature contracts Ricci with the inverse metric: R = g^μν R_μν.
func (c *Curvature) ScalarCurvature(p Point) float64 {
	ricci := c.Ricci(p)
	gInv := c.metric.GInverse(p)

	r := 0.0
	for mu := 0; mu < Dim; mu++ {
		for nu := 0; nu < Dim; nu++ {
			r += gInv[mu][nu] * ricci[mu][nu]
		}
	}
	return r
}

// Gradient is the forward-difference gradient of scalar curvature —
// the direction of increasing curvature. Agents flee along its negative.
func (c *Curvature) Gradient(p Point) [Dim]float64 {
	var grad [Dim]float64
	base := p.Vector()
	r0 := c.ScalarCurvature(p)

	for i := 0; i < Dim; i++ {
		plus := base
		plus[i] += c.step
		rPlus := c.ScalarCurvature(PointFromVector(plus))
		grad[i] = (rPlus - r0) / c.step
	}
	return grad
}

// DecoherenceField is the local instability measure Γ·(1 + 0.1|R|).
func (c *Curvature) DecoherenceField(p Point) float64 {
	r := math.Abs(c.ScalarCurvature(p))
	return p.Gamma * (1 + 0.1*r)
}

// CoherencePotential is V = −log(max(Ξ, 10⁻³)) + 0.1|R|. Agents descend
// this potential to stay coherent.
func (c *Curvature) CoherencePotential(p Point) float64 {
	xi := max(p.Xi(), 1e-3)
	r := c.ScalarCurvature(p)
	return -math.Log(xi) + 0.1*math.Abs(r)
}
