package agents

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/manifold/internal/entropy"
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

// State is the agent's operational state.
type State uint8

const (
	StateDormant    State = iota // not yet active
	StateSensing                 // gathering curvature data
	StateNavigating              // moving on a geodesic
	StateHealing                 // applying the repair transform
	StateEvolving                // applying the evolution operator
	StateConverged               // path exhausted
)

var stateNames = [...]string{"dormant", "sensing", "navigating", "healing", "evolving", "converged"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Agent is a stateful entity on the manifold. It exclusively owns its
// mutable fields; a single mutex guards every public operation, so
// callers must not hold overlapping calls on the same agent. Different
// agents are independent and safe to drive in parallel.
type Agent struct {
	ID   uuid.UUID
	Name string

	mu sync.Mutex

	manifold *geometry.Manifold
	operator Evolvable
	rng      *entropy.Source
	cfg      phys.Config

	state      State
	position   geometry.Point
	velocity   [geometry.Dim]float64
	target     *geometry.Point
	path       *geometry.Path
	pathIndex  int
	trajectory []geometry.Point

	generation     int
	fitness        float64
	mutationRate   float64
	totalDistance  float64
	healingCount   int
	evolutionCount int
}

// NewAgent creates a dormant agent at the given starting position.
// The entropy source drives mutation triggers and evolution noise and
// must be seeded by the caller for reproducible runs.
func NewAgent(name string, m *geometry.Manifold, start geometry.Point, op Evolvable, src *entropy.Source, cfg phys.Config) *Agent {
	return &Agent{
		ID:           uuid.New(),
		Name:         name,
		manifold:     m,
		operator:     op,
		rng:          src,
		cfg:          cfg,
		state:        StateDormant,
		position:     start,
		trajectory:   []geometry.Point{start},
		fitness:      1.0,
		mutationRate: cfg.MutationRate,
	}
}

// State returns the agent's current state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Position returns the agent's current position.
func (a *Agent) Position() geometry.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

// Velocity returns the agent's current tangent vector.
func (a *Agent) Velocity() [geometry.Dim]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.velocity
}

// PathIndex returns the agent's index into its geodesic path.
func (a *Agent) PathIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pathIndex
}

// Trajectory returns a copy of the agent's position history.
func (a *Agent) Trajectory() []geometry.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]geometry.Point, len(a.trajectory))
	copy(out, a.trajectory)
	return out
}

// SenseCurvature queries local geometry at the current position. The
// agent passes through the sensing state on every query regardless of
// its dominant state; position never changes.
func (a *Agent) SenseCurvature() CurvatureSense {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.senseLocked()
}

func (a *Agent) senseLocked() CurvatureSense {
	a.state = StateSensing
	p := a.position
	return CurvatureSense{
		ScalarCurvature:    a.manifold.ScalarCurvatureAt(p),
		Gradient:           a.manifold.CurvatureGradientAt(p),
		DecoherenceField:   a.manifold.DecoherenceField(p),
		CoherencePotential: a.manifold.CoherencePotential(p),
		Coherent:           p.Coherent(),
		NeedsHealing:       p.NeedsHealing(),
	}
}

// SenseNavigation reports progress along the current path.
func (a *Agent) SenseNavigation() NavigationSense {
	a.mu.Lock()
	defer a.mu.Unlock()

	progress := 0.0
	if a.path.Len() > 1 {
		progress = float64(a.pathIndex) / float64(a.path.Len()-1)
	}
	remaining := 0
	if a.path != nil {
		remaining = a.path.Len() - 1 - a.pathIndex
	}
	return NavigationSense{
		Position:        a.position,
		Target:          a.target,
		RemainingLength: a.remainingLengthLocked(),
		Progress:        progress,
		StepsRemaining:  remaining,
	}
}

func (a *Agent) remainingLengthLocked() float64 {
	if a.path == nil || a.pathIndex >= a.path.Len()-1 {
		return 0
	}
	length := 0.0
	for i := a.pathIndex; i < a.path.Len()-1; i++ {
		length += a.manifold.Distance(a.path.Points[i], a.path.Points[i+1])
	}
	return length
}

// SetTarget computes a geodesic to the target and enters navigation.
// The returned path carries the solver's convergence flag; an
// unconverged path is still navigable but only approximates the target.
func (a *Agent) SetTarget(target geometry.Point) *geometry.Path {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := target
	a.target = &t
	a.path = a.manifold.FindGeodesic(a.position, target, a.cfg.DefaultPathSteps)
	a.pathIndex = 0
	a.state = StateNavigating
	return a.path
}

// Step advances the agent by one tick. Healing takes priority over
// navigation; with no path, or an exhausted one, the agent converges and
// the call is a no-op returning false. Otherwise the agent moves to the
// next path point, and with probability mutationRate mutates.
func (a *Agent) Step() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stepLocked()
}

func (a *Agent) stepLocked() bool {
	if a.position.NeedsHealing() {
		a.healLocked()
		return true
	}

	if a.path == nil || a.pathIndex >= a.path.Len()-1 {
		a.state = StateConverged
		return false
	}

	old := a.position
	a.pathIndex++
	a.position = a.path.Points[a.pathIndex]
	a.state = StateNavigating

	ov, nv := old.Vector(), a.position.Vector()
	for i := range a.velocity {
		a.velocity[i] = nv[i] - ov[i]
	}

	a.totalDistance += a.manifold.Distance(old, a.position)
	a.trajectory = append(a.trajectory, a.position)

	if a.rng.Float() < a.mutationRate {
		a.mutateLocked()
	}
	return true
}

// NavigateTo sets a target and steps until converged or the budget runs
// out. Returns true when the agent ends within 0.01 of the target.
func (a *Agent) NavigateTo(target geometry.Point, maxSteps int) bool {
	a.SetTarget(target)
	for i := 0; i < maxSteps; i++ {
		if !a.Step() {
			break
		}
		if a.manifold.Distance(a.Position(), target) < 0.01 {
			a.mu.Lock()
			a.state = StateConverged
			a.mu.Unlock()
			return true
		}
	}
	return a.State() == StateConverged
}

// FleeHighCurvature bypasses the precomputed path: the agent repeatedly
// takes a small fixed step against the curvature gradient. A local
// escape for dangerous regions, not a geodesic.
func (a *Agent) FleeHighCurvature(steps int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fleeLocked(steps)
}

func (a *Agent) fleeLocked(steps int) {
	for i := 0; i < steps; i++ {
		grad := a.manifold.CurvatureGradientAt(a.position)

		norm := 0.0
		for _, g := range grad {
			norm += g * g
		}
		norm = math.Sqrt(norm) + 1e-8

		v := a.position.Vector()
		for j := range v {
			v[j] -= a.cfg.FleeStepSize * grad[j] / norm
		}
		a.position = geometry.PointFromVector(v)
		a.trajectory = append(a.trajectory, a.position)
	}
}

// ForceHeal applies the repair transform regardless of threshold.
func (a *Agent) ForceHeal() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.healLocked()
}

// healLocked applies the deterministic repair transform:
//
//	Γ' = Γ(1−χ)      decoherence reduction, strictly decreasing
//	Λ' = min(1, Λ/Γ) coherence restoration
//	Φ' blended toward the baseline by χ
//	ψ' = 1 − ψ + χ   phase flip plus restoration
//
// τ advances slightly; healing counts as the tick's movement.
func (a *Agent) healLocked() {
	a.state = StateHealing
	a.healingCount++

	chi := a.cfg.HealingChi
	p := a.position
	a.position = geometry.NewPoint(
		min(1, p.Lambda/max(p.Gamma, 0.01)),
		p.Phi*chi+(1-chi)*a.cfg.PhiBaseline,
		p.Gamma*(1-chi),
		p.Tau+0.01,
		p.Epsilon,
		1-p.Psi+chi,
	)
	a.trajectory = append(a.trajectory, a.position)
}

// EvolveStep applies one step of the agent's evolution operator.
func (a *Agent) EvolveStep() geometry.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.evolveOperatorLocked()
}

func (a *Agent) evolveOperatorLocked() geometry.Point {
	a.state = StateEvolving
	a.position = a.operator.Evolve(a.position)
	a.generation++
	a.trajectory = append(a.trajectory, a.position)
	return a.position
}

// mutateLocked perturbs the position with smooth noise biased toward
// coherence (Λ up, Γ down) and refreshes fitness.
func (a *Agent) mutateLocked() {
	a.state = StateEvolving
	a.evolutionCount++
	a.generation++

	d := a.rng.Perturb(a.mutationRate)
	d[0] += 0.01
	d[2] -= 0.01

	v := a.position.Vector()
	for i := range v {
		v[i] += d[i]
	}
	a.position = geometry.PointFromVector(v)
	a.fitness = a.position.Xi() / phys.PhiThreshold
}
