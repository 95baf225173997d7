package agents

import (
	"github.com/talgya/manifold/internal/entropy"
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

// OperatorKind selects an agent's evolution operator.
type OperatorKind string

const (
	OperatorObserver OperatorKind = "observer"
	OperatorExecutor OperatorKind = "executor"
)

// Calibration supplies the initial coordinates and operator for a newly
// spawned agent. Zero MutationRate selects the configured default.
type Calibration struct {
	Name         string
	Start        geometry.Point
	Operator     OperatorKind
	MutationRate float64
}

// Spawner creates agents with deterministic per-agent entropy streams
// derived from a single seed, in spawn order.
type Spawner struct {
	manifold *geometry.Manifold
	cfg      phys.Config
	src      *entropy.Source
	count    int64
}

// NewSpawner creates a spawner over the manifold with a master seed.
func NewSpawner(m *geometry.Manifold, cfg phys.Config, seed int64) *Spawner {
	return &Spawner{
		manifold: m,
		cfg:      cfg,
		src:      entropy.NewSource(seed),
	}
}

// Spawn creates an agent from a calibration.
func (s *Spawner) Spawn(cal Calibration) *Agent {
	s.count++

	var op Evolvable
	switch cal.Operator {
	case OperatorExecutor:
		op = ExecutorBias{}
	default:
		op = ObserverBias{}
	}

	a := NewAgent(cal.Name, s.manifold, cal.Start, op, s.src.Fork(s.count), s.cfg)
	if cal.MutationRate > 0 {
		a.mutationRate = cal.MutationRate
	}
	return a
}

// SpawnPair creates a coupled observer/executor pair.
func (s *Spawner) SpawnPair(observer, executor Calibration) *CoupledPair {
	observer.Operator = OperatorObserver
	executor.Operator = OperatorExecutor
	return NewCoupledPair(s.manifold, s.Spawn(observer), s.Spawn(executor), s.cfg)
}
