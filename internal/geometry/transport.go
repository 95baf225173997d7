package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/manifold/internal/phys"
)

// Transport errors.
var (
	ErrEmptyDistribution = errors.New("geometry: transport requires non-empty distributions")
	ErrWeightMismatch    = errors.New("geometry: weights must match their point sets")
)

// Transport computes Sinkhorn-regularized optimal transport between
// weighted point sets under the manifold metric, and point-to-point
// transport paths via the geodesic solver (McCann interpolation).
type Transport struct {
	metric  *MetricTensor
	solver  *GeodesicSolver
	epsilon float64
	iters   int
}

// NewTransport builds a transport calculator over the given metric.
func NewTransport(metric *MetricTensor, solver *GeodesicSolver, cfg phys.Config) *Transport {
	return &Transport{
		metric:  metric,
		solver:  solver,
		epsilon: cfg.SinkhornEpsilon,
		iters:   cfg.SinkhornIters,
	}
}

// W2Distance approximates the Wasserstein-2 distance between two discrete
// distributions.
func (t *Transport) W2Distance(src []Point, srcW []float64, dst []Point, dstW []float64) (float64, error) {
	plan, cost, err := t.Plan(src, srcW, dst, dstW)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for i := range plan {
		for j := range plan[i] {
			total += plan[i][j] * cost[i][j]
		}
	}
	return math.Sqrt(total), nil
}

// Plan runs the Sinkhorn iteration and returns the transport plan
// P = diag(u)·K·diag(v) together with the squared-distance cost matrix.
// The iteration count is fixed with no residual check; the entropic
// relaxation only approximates the marginals at finite regularization.
func (t *Transport) Plan(src []Point, srcW []float64, dst []Point, dstW []float64) ([][]float64, [][]float64, error) {
	n, m := len(src), len(dst)
	if n == 0 || m == 0 {
		return nil, nil, ErrEmptyDistribution
	}
	if len(srcW) != n || len(dstW) != m {
		return nil, nil, fmt.Errorf("%w: %d/%d weights for %d/%d points",
			ErrWeightMismatch, len(srcW), len(dstW), n, m)
	}

	cost := make([][]float64, n)
	kernel := make([][]float64, n)
	for i := 0; i < n; i++ {
		cost[i] = make([]float64, m)
		kernel[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			cost[i][j] = t.metric.DistanceSquared(src[i], dst[j])
			kernel[i][j] = math.Exp(-cost[i][j] / t.epsilon)
		}
	}

	u := make([]float64, n)
	v := make([]float64, m)
	for i := range u {
		u[i] = 1
	}
	for j := range v {
		v[j] = 1
	}

	// Alternating row/column scaling. Denominators are floored to keep
	// degenerate kernels from producing NaN.
	const denomFloor = 1e-300
	for iter := 0; iter < t.iters; iter++ {
		for i := 0; i < n; i++ {
			kv := 0.0
			for j := 0; j < m; j++ {
				kv += kernel[i][j] * v[j]
			}
			u[i] = srcW[i] / max(kv, denomFloor)
		}
		for j := 0; j < m; j++ {
			ku := 0.0
			for i := 0; i < n; i++ {
				ku += kernel[i][j] * u[i]
			}
			v[j] = dstW[j] / max(ku, denomFloor)
		}
	}

	plan := make([][]float64, n)
	for i := 0; i < n; i++ {
		plan[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			plan[i][j] = u[i] * kernel[i][j] * v[j]
		}
	}
	return plan, cost, nil
}

// TransportPath is the single-mass-point case: interpolation along the
// already-defined geodesic between source and target.
func (t *Transport) TransportPath(src, dst Point, steps int) *Path {
	return t.solver.Solve(src, dst, steps, 0)
}
