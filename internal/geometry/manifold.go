package geometry

import "github.com/talgya/manifold/internal/phys"

// Manifold is the single entry point to the 6D space: distance,
// curvature queries, geodesic paths, and optimal transport.
type Manifold struct {
	cfg phys.Config

	Metric    *MetricTensor
	Curvature *Curvature
	Geodesic  *GeodesicSolver
	Transport *Transport
}

// New wires the manifold stack from a configuration.
func New(cfg phys.Config) *Manifold {
	metric := NewMetricTensor(cfg)
	solver := NewGeodesicSolver(metric, cfg)
	return &Manifold{
		cfg:       cfg,
		Metric:    metric,
		Curvature: NewCurvature(metric, cfg),
		Geodesic:  solver,
		Transport: NewTransport(metric, solver, cfg),
	}
}

// Config returns the configuration the manifold was built with.
func (m *Manifold) Config() phys.Config { return m.cfg }

// Distance is the geodesic distance approximation between two points.
func (m *Manifold) Distance(p1, p2 Point) float64 {
	return m.Metric.Distance(p1, p2)
}

// ScalarCurvatureAt evaluates scalar curvature at a point.
func (m *Manifold) ScalarCurvatureAt(p Point) float64 {
	return m.Curvature.ScalarCurvature(p)
}

// CurvatureGradientAt evaluates the curvature gradient at a point.
func (m *Manifold) CurvatureGradientAt(p Point) [Dim]float64 {
	return m.Curvature.Gradient(p)
}

// FindGeodesic solves the boundary value problem between two points.
func (m *Manifold) FindGeodesic(start, end Point, steps int) *Path {
	return m.Geodesic.Solve(start, end, steps, 0)
}

// TransportPath returns the optimal transport path for a single mass
// point — the geodesic between source and target.
func (m *Manifold) TransportPath(src, dst Point, steps int) *Path {
	return m.Transport.TransportPath(src, dst, steps)
}

// W2Distance approximates the Wasserstein-2 distance between two
// weighted point sets.
func (m *Manifold) W2Distance(src []Point, srcW []float64, dst []Point, dstW []float64) (float64, error) {
	return m.Transport.W2Distance(src, srcW, dst, dstW)
}

// IsCoherentRegion reports whether a point lies in the coherent region.
func (m *Manifold) IsCoherentRegion(p Point) bool { return p.Coherent() }

// DecoherenceField is the local instability measure at a point.
func (m *Manifold) DecoherenceField(p Point) float64 {
	return m.Curvature.DecoherenceField(p)
}

// CoherencePotential is the potential agents descend to stay coherent.
func (m *Manifold) CoherencePotential(p Point) float64 {
	return m.Curvature.CoherencePotential(p)
}
