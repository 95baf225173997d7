package agents

import (
	"bytes"
	"math"

	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

// CoupledPair synchronizes two agents: an observer that senses and an
// executor that reacts. After each coupled step a coupling force pulls
// both positions a fixed fraction of the way toward each other.
type CoupledPair struct {
	manifold *geometry.Manifold
	cfg      phys.Config

	Observer *Agent
	Executor *Agent

	strength float64
	history  []float64
}

// NewCoupledPair couples an observer and an executor on a shared
// manifold. Pairs may share agents in either role; every two-agent
// transaction locks in the global ID order (see lockBoth).
func NewCoupledPair(m *geometry.Manifold, observer, executor *Agent, cfg phys.Config) *CoupledPair {
	return &CoupledPair{
		manifold: m,
		cfg:      cfg,
		Observer: observer,
		Executor: executor,
		strength: cfg.CouplingStrength,
	}
}

// lockBoth acquires both agents' mutexes in a stable global order — the
// lower agent ID first, regardless of pair roles — so concurrent pairs
// sharing agents in opposite roles cannot deadlock. Returns the
// matching unlock.
func (cp *CoupledPair) lockBoth() func() {
	first, second := cp.Observer, cp.Executor
	if bytes.Compare(second.ID[:], first.ID[:]) < 0 {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

// CoupledStep runs one synchronization round as a single transaction
// over both agents' state:
//
//  1. the observer senses local curvature
//  2. the executor reacts — heal when decoherent, flee when the danger
//     level is high, otherwise evolve
//  3. the observer evolves
//  4. the coupling force pulls both positions together
//
// The ordering is load-bearing: reversing it changes convergence.
// Returns the synchronization score exp(−distance).
func (cp *CoupledPair) CoupledStep() float64 {
	unlock := cp.lockBoth()
	defer unlock()

	obs := cp.Observer.senseLocked()
	switch {
	case obs.NeedsHealing:
		cp.Executor.healLocked()
	case obs.DangerLevel() > cp.cfg.DangerThreshold:
		cp.Executor.fleeLocked(3)
	default:
		cp.Executor.evolveOperatorLocked()
	}

	cp.Observer.evolveOperatorLocked()
	cp.applyCouplingLocked()

	sync := cp.syncLocked()
	cp.history = append(cp.history, sync)
	return sync
}

// applyCouplingLocked moves each agent toward the other by a fixed
// fraction of their pre-update separation. The difference is computed
// once and applied symmetrically, never recomputed mid-update.
func (cp *CoupledPair) applyCouplingLocked() {
	k := cp.strength * cp.cfg.CouplingGain

	a := cp.Observer.position.Vector()
	b := cp.Executor.position.Vector()

	var na, nb [geometry.Dim]float64
	for i := 0; i < geometry.Dim; i++ {
		diff := b[i] - a[i]
		na[i] = a[i] + k*diff
		nb[i] = b[i] - k*diff
	}

	cp.Observer.position = geometry.PointFromVector(na)
	cp.Executor.position = geometry.PointFromVector(nb)
}

func (cp *CoupledPair) syncLocked() float64 {
	return math.Exp(-cp.manifold.Distance(cp.Observer.position, cp.Executor.position))
}

// Synchronization measures the current coupling score and records it.
func (cp *CoupledPair) Synchronization() float64 {
	unlock := cp.lockBoth()
	defer unlock()

	sync := cp.syncLocked()
	cp.history = append(cp.history, sync)
	return sync
}

// SyncHistory returns a copy of the recorded synchronization scores.
func (cp *CoupledPair) SyncHistory() []float64 {
	unlock := cp.lockBoth()
	defer unlock()

	out := make([]float64, len(cp.history))
	copy(out, cp.history)
	return out
}

// NavigateTogether drives both agents toward the same target in
// coordination, coupling after each pair of steps. Returns true when
// both end within 0.05 of the target.
func (cp *CoupledPair) NavigateTogether(target geometry.Point, maxSteps int) bool {
	cp.Observer.SetTarget(target)
	cp.Executor.SetTarget(target)

	for i := 0; i < maxSteps; i++ {
		cp.Observer.Step()
		cp.Executor.Step()

		unlock := cp.lockBoth()
		cp.applyCouplingLocked()
		obsDist := cp.manifold.Distance(cp.Observer.position, target)
		execDist := cp.manifold.Distance(cp.Executor.position, target)
		unlock()

		if obsDist < 0.05 && execDist < 0.05 {
			return true
		}
	}
	return false
}
