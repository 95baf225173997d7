package geometry

import (
	"math"

	"github.com/talgya/manifold/internal/phys"
)

// Matrix is a 6×6 tensor over the manifold coordinates.
type Matrix [Dim][Dim]float64

// MetricTensor defines distances and angles on the manifold. The metric
// is position-dependent (curved space) and recomputed per query; the only
// persistent state is the fixed coupling coefficients.
type MetricTensor struct {
	lambdaPhi     float64
	gammaPsi      float64
	epsilonLambda float64
}

// NewMetricTensor builds a metric from the configured couplings.
func NewMetricTensor(cfg phys.Config) *MetricTensor {
	return &MetricTensor{
		lambdaPhi:     cfg.LambdaPhiCoupling,
		gammaPsi:      cfg.GammaPsiCoupling,
		epsilonLambda: cfg.EpsilonLambdaCoupling,
	}
}

// G computes the metric tensor g_μν at a point. Symmetric by
// construction: only the diagonal and three coupled cells are set.
// Coordinate indices: 0=Λ, 1=Φ, 2=Γ, 3=τ, 4=ε, 5=ψ.
func (m *MetricTensor) G(p Point) Matrix {
	var g Matrix
	for i := 0; i < Dim; i++ {
		g[i][i] = 1
	}

	// ΛΦ coupling — stronger when both are high.
	g[0][1] = -m.lambdaPhi * p.Lambda * p.Phi
	g[1][0] = g[0][1]

	// Γψ coupling — decoherence costs more to traverse at high phase.
	g[2][5] = m.gammaPsi * p.Psi
	g[5][2] = g[2][5]

	// εΛ coupling — entanglement supports coherence.
	g[0][4] = -m.epsilonLambda * p.Epsilon
	g[4][0] = g[0][4]

	// τ scales down with coherence; Γ scales up with decoherence.
	g[3][3] = 1 / (1 + p.Lambda)
	g[2][2] = 1 + p.Gamma*10

	return g
}

// GInverse computes g^μν. When the metric is near-singular the inverse is
// regularized (Tikhonov: add λI and retry with growing λ) instead of
// letting NaNs propagate downstream.
func (m *MetricTensor) GInverse(p Point) Matrix {
	g := m.G(p)
	if inv, ok := invert(g); ok {
		return inv
	}
	for lambda := 1e-10; lambda <= 1e-2; lambda *= 100 {
		reg := g
		for i := 0; i < Dim; i++ {
			reg[i][i] += lambda
		}
		if inv, ok := invert(reg); ok {
			return inv
		}
	}
	// Unreachable for any metric this package produces; identity keeps
	// downstream contractions finite.
	var id Matrix
	for i := 0; i < Dim; i++ {
		id[i][i] = 1
	}
	return id
}

// DistanceSquared contracts Δx against the metric evaluated at the
// midpoint of p1 and p2: ds² = Δxᵗ g(mid) Δx. The midpoint keeps the
// quadratic form symmetric in its arguments.
func (m *MetricTensor) DistanceSquared(p1, p2 Point) float64 {
	v1, v2 := p1.Vector(), p2.Vector()
	dx := subVec(v2, v1)
	g := m.G(PointFromVector(midVec(v1, v2)))

	ds2 := 0.0
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			ds2 += dx[i] * g[i][j] * dx[j]
		}
	}
	return ds2
}

// Distance is the geodesic distance approximation between two points.
// The off-diagonal couplings make the metric indefinite, so the quadratic
// form can go negative; it is clamped at zero before the square root.
func (m *MetricTensor) Distance(p1, p2 Point) float64 {
	return math.Sqrt(max(0, m.DistanceSquared(p1, p2)))
}

// invert performs Gauss-Jordan elimination with partial pivoting.
// Reports false when a pivot falls below the singularity floor.
func invert(a Matrix) (Matrix, bool) {
	var inv Matrix
	for i := 0; i < Dim; i++ {
		inv[i][i] = 1
	}

	const pivotFloor = 1e-12

	for col := 0; col < Dim; col++ {
		pivot := col
		for row := col + 1; row < Dim; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < pivotFloor {
			return Matrix{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := 1 / a[col][col]
		for j := 0; j < Dim; j++ {
			a[col][j] *= scale
			inv[col][j] *= scale
		}
		for row := 0; row < Dim; row++ {
			if row == col {
				continue
			}
			factor := a[row][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < Dim; j++ {
				a[row][j] -= factor * a[col][j]
				inv[row][j] -= factor * inv[col][j]
			}
		}
	}
	return inv, true
}
