package phys

// Config carries every tunable of the manifold geometry and the agents
// that move on it. It is passed by value into constructors and never
// mutated afterward; there is no package-level mutable state.
type Config struct {
	// Metric coupling coefficients.
	LambdaPhiCoupling     float64 // Λ–Φ off-diagonal, scaled for stability
	GammaPsiCoupling      float64 // Γ–ψ off-diagonal
	EpsilonLambdaCoupling float64 // ε–Λ off-diagonal

	// Finite-difference step sizes.
	MetricStep    float64 // for Christoffel symbols
	CurvatureStep float64 // for Riemann tensor and gradients

	// Geodesic shooting solver.
	ShootingTolerance float64 // endpoint error norm for convergence
	ShootingGain      float64 // proportional velocity correction factor
	MaxShootingIters  int     // outer iteration budget
	DefaultPathSteps  int     // RK4 sub-steps for agent navigation

	// Entropic optimal transport.
	SinkhornEpsilon float64 // entropic regularization
	SinkhornIters   int     // fixed iteration count, no residual check

	// Agent dynamics.
	HealingChi       float64 // χ ∈ (0,1), decoherence reduction per heal
	PhiBaseline      float64 // Φ blend target during healing
	MutationRate     float64 // per-step evolution probability
	FleeStepSize     float64 // step length when escaping high curvature
	DangerThreshold  float64 // danger level that triggers a flee reaction
	CouplingStrength float64 // pair coupling base strength
	CouplingGain     float64 // fraction of strength applied per step
}

// DefaultConfig returns the canonical manifold configuration.
func DefaultConfig() Config {
	return Config{
		LambdaPhiCoupling:     LambdaPhi * 1e8, // scaled for numerical stability
		GammaPsiCoupling:      GammaFixed,
		EpsilonLambdaCoupling: ChiPC,

		MetricStep:    1e-6,
		CurvatureStep: 1e-5,

		ShootingTolerance: 1e-4,
		ShootingGain:      0.5,
		MaxShootingIters:  50,
		DefaultPathSteps:  50,

		SinkhornEpsilon: 0.1,
		SinkhornIters:   100,

		HealingChi:       ChiPC,
		PhiBaseline:      PhiThreshold / 10,
		MutationRate:     0.03,
		FleeStepSize:     0.05,
		DangerThreshold:  0.5,
		CouplingStrength: ChiPC,
		CouplingGain:     0.1,
	}
}
