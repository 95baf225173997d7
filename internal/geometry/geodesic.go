package geometry

import (
	"math"

	"github.com/talgya/manifold/internal/phys"
)

// velocityCap bounds the integrated velocity norm. The quadratic
// acceleration term otherwise overflows to ±Inf within a handful of
// sub-steps once the shooting loop starts diverging, and the Inf−Inf
// that follows poisons the whole path with NaN.
const velocityCap = 100.0

// Path is an ordered, finite sequence of points produced once by the
// solver. The first point equals the requested start by construction;
// the last approximates the requested end within the achieved tolerance.
// Converged is false when the shooting loop exhausted its iteration
// budget — a normal, best-effort outcome, not an error.
type Path struct {
	Points    []Point
	Converged bool
}

// Len returns the number of points on the path.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Points)
}

// GeodesicSolver integrates the geodesic ODE and solves the two-point
// boundary value problem by shooting.
type GeodesicSolver struct {
	metric      *MetricTensor
	christoffel *Christoffel
	tolerance   float64
	gain        float64
	maxIters    int
}

// NewGeodesicSolver builds a solver over the given metric.
func NewGeodesicSolver(metric *MetricTensor, cfg phys.Config) *GeodesicSolver {
	return &GeodesicSolver{
		metric:      metric,
		christoffel: NewChristoffel(metric, cfg),
		tolerance:   cfg.ShootingTolerance,
		gain:        cfg.ShootingGain,
		maxIters:    cfg.MaxShootingIters,
	}
}

// Solve finds a geodesic from start to end with steps RK4 sub-steps.
// Shooting method: integrate ẍ^μ = −Γ^μ_νσ ẋ^ν ẋ^σ from a trial initial
// velocity, then nudge the velocity by a fraction of the endpoint error
// until the error norm drops below tolerance or maxIters is exhausted.
// maxIters ≤ 0 selects the configured budget.
func (s *GeodesicSolver) Solve(start, end Point, steps, maxIters int) *Path {
	if maxIters <= 0 {
		maxIters = s.maxIters
	}

	x0 := start.Vector()
	xf := end.Vector()
	v0 := subVec(xf, x0)
	dt := 1.0 / float64(steps)

	var raw [][Dim]float64
	converged := false

	for iter := 0; iter < maxIters; iter++ {
		raw = s.integrate(x0, v0, steps, dt)

		err := subVec(xf, raw[len(raw)-1])
		if normVec(err) < s.tolerance {
			converged = true
			break
		}

		// Proportional correction, not a full Newton step.
		v0 = addVec(v0, scaleVec(err, s.gain))
	}

	points := make([]Point, len(raw))
	points[0] = start // exact by construction
	for i := 1; i < len(raw); i++ {
		points[i] = PointFromVector(raw[i])
	}
	return &Path{Points: points, Converged: converged}
}

// acceleration evaluates the geodesic equation RHS a^μ = −Γ^μ_νσ v^ν v^σ.
func (s *GeodesicSolver) acceleration(x, v [Dim]float64) [Dim]float64 {
	gamma := s.christoffel.Compute(PointFromVector(x))

	var a [Dim]float64
	for mu := 0; mu < Dim; mu++ {
		sum := 0.0
		for nu := 0; nu < Dim; nu++ {
			for sigma := 0; sigma < Dim; sigma++ {
				sum -= gamma[mu][nu][sigma] * v[nu] * v[sigma]
			}
		}
		a[mu] = sum
	}
	return a
}

// integrate runs fixed-step RK4 on the second-order geodesic ODE. After
// every sub-step the coordinates are clamped back into their valid
// domain to prevent divergence.
func (s *GeodesicSolver) integrate(x0, v0 [Dim]float64, steps int, dt float64) [][Dim]float64 {
	path := make([][Dim]float64, 0, steps+1)
	path = append(path, x0)

	x, v := x0, v0
	for i := 0; i < steps; i++ {
		k1x := v
		k1v := s.acceleration(x, v)

		k2x := addVec(v, scaleVec(k1v, dt/2))
		k2v := s.acceleration(addVec(x, scaleVec(k1x, dt/2)), k2x)

		k3x := addVec(v, scaleVec(k2v, dt/2))
		k3v := s.acceleration(addVec(x, scaleVec(k2x, dt/2)), k3x)

		k4x := addVec(v, scaleVec(k3v, dt))
		k4v := s.acceleration(addVec(x, scaleVec(k3x, dt)), k4x)

		for j := 0; j < Dim; j++ {
			x[j] += dt / 6 * (k1x[j] + 2*k2x[j] + 2*k3x[j] + k4x[j])
			v[j] += dt / 6 * (k1v[j] + 2*k2v[j] + 2*k3v[j] + k4v[j])
		}

		// Λ, Φ, Γ into [GammaMin,1]; ε, ψ into [0,1]; τ ≥ 0.
		for j := 0; j < 3; j++ {
			x[j] = clamp(x[j], phys.GammaMin, 1)
		}
		x[3] = math.Max(x[3], 0)
		x[4] = clamp(x[4], 0, 1)
		x[5] = clamp(x[5], 0, 1)

		if n := normVec(v); n > velocityCap {
			v = scaleVec(v, velocityCap/n)
		}

		path = append(path, x)
	}
	return path
}

// Length sums the metric distances between consecutive path points.
func (s *GeodesicSolver) Length(p *Path) float64 {
	if p.Len() < 2 {
		return 0
	}
	length := 0.0
	for i := 0; i < len(p.Points)-1; i++ {
		length += s.metric.Distance(p.Points[i], p.Points[i+1])
	}
	return length
}
