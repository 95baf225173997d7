package geometry

import "github.com/talgya/manifold/internal/phys"

// Tensor3 holds the connection coefficients Γ^σ_μν indexed [σ][μ][ν].
type Tensor3 [Dim][Dim][Dim]float64

// Christoffel computes connection coefficients by central finite
// differences of the metric. Results are not cached; callers that need
// repeated evaluations at nearby points should batch externally.
type Christoffel struct {
	metric *MetricTensor
	step   float64
}

// NewChristoffel builds a connection over the given metric.
func NewChristoffel(metric *MetricTensor, cfg phys.Config) *Christoffel {
	return &Christoffel{metric: metric, step: cfg.MetricStep}
}

// Compute evaluates Γ^σ_μν = ½ g^σρ (∂_μ g_νρ + ∂_ν g_μρ − ∂_ρ g_μν)
// at a point. Costs O(6) metric evaluations for the derivatives plus an
// O(6⁴) contraction.
func (c *Christoffel) Compute(p Point) Tensor3 {
	gInv := c.metric.GInverse(p)
	base := p.Vector()

	// dg[ρ][μ][ν] = ∂_ρ g_μν by central differences along each axis.
	var dg Tensor3
	for rho := 0; rho < Dim; rho++ {
		plus, minus := base, base
		plus[rho] += c.step
		minus[rho] -= c.step

		gPlus := c.metric.G(PointFromVector(plus))
		gMinus := c.metric.G(PointFromVector(minus))

		for mu := 0; mu < Dim; mu++ {
			for nu := 0; nu < Dim; nu++ {
				dg[rho][mu][nu] = (gPlus[mu][nu] - gMinus[mu][nu]) / (2 * c.step)
			}
		}
	}

	var gamma Tensor3
	for sigma := 0; sigma < Dim; sigma++ {
		for mu := 0; mu < Dim; mu++ {
			for nu := 0; nu < Dim; nu++ {
				sum := 0.0
				for rho := 0; rho < Dim; rho++ {
					sum += gInv[sigma][rho] * (dg[mu][nu][rho] + dg[nu][mu][rho] - dg[rho][mu][nu])
				}
				gamma[sigma][mu][nu] = 0.5 * sum
			}
		}
	}
	return gamma
}
