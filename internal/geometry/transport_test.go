package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

func newTransport() *geometry.Transport {
	cfg := phys.DefaultConfig()
	m := geometry.NewMetricTensor(cfg)
	return geometry.NewTransport(m, geometry.NewGeodesicSolver(m, cfg), cfg)
}

// TestTransport_EmptyDistribution verifies the empty-input sentinel.
func TestTransport_EmptyDistribution(t *testing.T) {
	tr := newTransport()
	p := geometry.DefaultPoint()

	_, _, err := tr.Plan(nil, nil, []geometry.Point{p}, []float64{1})
	assert.ErrorIs(t, err, geometry.ErrEmptyDistribution)

	_, _, err = tr.Plan([]geometry.Point{p}, []float64{1}, nil, nil)
	assert.ErrorIs(t, err, geometry.ErrEmptyDistribution)
}

// TestTransport_WeightMismatch verifies the shape-check sentinel.
func TestTransport_WeightMismatch(t *testing.T) {
	tr := newTransport()
	p := geometry.DefaultPoint()

	_, _, err := tr.Plan([]geometry.Point{p, p}, []float64{1}, []geometry.Point{p}, []float64{1})
	assert.ErrorIs(t, err, geometry.ErrWeightMismatch)
}

// TestTransport_PlanMarginals runs Sinkhorn on a small problem and
// checks that the plan is nonnegative and reproduces both marginals.
// The final iteration updates v last, so the column marginals are exact;
// the rows carry the entropic approximation error.
func TestTransport_PlanMarginals(t *testing.T) {
	tr := newTransport()
	src := []geometry.Point{
		geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.9),
		geometry.NewPoint(0.8, 0.6, 0.2, 0.5, 0.4, 0.7),
		geometry.NewPoint(0.3, 0.4, 0.5, 1.0, 0.2, 0.3),
	}
	dst := []geometry.Point{
		geometry.NewPoint(0.5, 0.5, 0.25, 1.5, 0.4, 0.6),
		geometry.NewPoint(0.2, 0.3, 0.6, 2.0, 0.1, 0.2),
	}
	srcW := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	dstW := []float64{0.5, 0.5}

	plan, cost, err := tr.Plan(src, srcW, dst, dstW)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	require.Len(t, cost, 3)

	for j := range dst {
		col := 0.0
		for i := range src {
			assert.GreaterOrEqual(t, plan[i][j], 0.0, "plan entries are nonnegative")
			col += plan[i][j]
		}
		assert.InDelta(t, dstW[j], col, 1e-9, "column marginal %d", j)
	}
	for i := range src {
		row := 0.0
		for j := range dst {
			row += plan[i][j]
		}
		assert.InDelta(t, srcW[i], row, 1e-2, "row marginal %d", i)
	}
}

// TestTransport_W2Distance verifies the distance is near zero between a
// distribution and itself, and clearly positive between separated ones.
func TestTransport_W2Distance(t *testing.T) {
	tr := newTransport()
	a := []geometry.Point{
		geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.9),
		geometry.NewPoint(0.1, 0.1, 0.9, 3.0, 0.1, 0.1),
	}
	w := []float64{0.5, 0.5}

	self, err := tr.W2Distance(a, w, a, w)
	require.NoError(t, err)
	assert.Less(t, self, 0.01, "self-transport cost is negligible")

	b := []geometry.Point{
		geometry.NewPoint(0.5, 0.5, 0.25, 1.5, 0.4, 0.6),
		geometry.NewPoint(0.2, 0.3, 0.6, 2.0, 0.1, 0.2),
	}
	far, err := tr.W2Distance(a, w, b, w)
	require.NoError(t, err)
	assert.Greater(t, far, 0.1, "separated distributions cost real transport")
}

// TestTransport_Path verifies the single-mass-point case delegates to
// the geodesic solver.
func TestTransport_Path(t *testing.T) {
	tr := newTransport()
	src := geometry.NewPoint(0.9, 0.85, 0.1, 0, 0.5, 0.9)
	dst := geometry.NewPoint(0.8, 0.8, 0.15, 0.5, 0.6, 0.8)

	path := tr.TransportPath(src, dst, 20)
	require.True(t, path.Converged)
	assert.Equal(t, 21, path.Len())
	assert.Equal(t, src, path.Points[0])
}
