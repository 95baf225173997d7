// Simulation aggregates agents and coupled pairs and runs them each tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/manifold/internal/agents"
	"github.com/talgya/manifold/internal/geometry"
)

// maxEvents caps the in-memory event buffer.
const maxEvents = 1000

// Event is a notable occurrence during a run.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "healing", "navigation", "coupling"
}

// SimStats tracks aggregate state across all agents.
type SimStats struct {
	AgentCount int     `json:"agent_count"`
	AvgXi      float64 `json:"avg_xi"`
	AvgFitness float64 `json:"avg_fitness"`
	AvgSync    float64 `json:"avg_sync"`
	Healings   int     `json:"healings"`
	Evolutions int     `json:"evolutions"`
	Converged  int     `json:"converged"`
}

// Simulation holds the manifold, the agents that move on it, and the
// coupled pairs. Solo agents step on their own; pair members are driven
// exclusively through their pair's coupled step so the coupling always
// runs after both members' own updates for the tick.
type Simulation struct {
	Manifold *geometry.Manifold
	Solo     []*agents.Agent
	Pairs    []*agents.CoupledPair
	Events   []Event
	LastTick uint64
	Stats    SimStats
}

// NewSimulation wires a simulation over the given manifold.
func NewSimulation(m *geometry.Manifold) *Simulation {
	return &Simulation{Manifold: m}
}

// AddAgent registers a solo agent.
func (s *Simulation) AddAgent(a *agents.Agent) {
	s.Solo = append(s.Solo, a)
}

// AddPair registers a coupled pair.
func (s *Simulation) AddPair(p *agents.CoupledPair) {
	s.Pairs = append(s.Pairs, p)
}

// AllAgents returns every agent, solo and paired.
func (s *Simulation) AllAgents() []*agents.Agent {
	out := make([]*agents.Agent, 0, len(s.Solo)+2*len(s.Pairs))
	out = append(out, s.Solo...)
	for _, p := range s.Pairs {
		out = append(out, p.Observer, p.Executor)
	}
	return out
}

// TickStep runs every tick: each solo agent steps, then each pair runs
// its coupled transaction.
func (s *Simulation) TickStep(tick uint64) {
	s.LastTick = tick

	for _, a := range s.Solo {
		needsHeal := a.Position().NeedsHealing()
		a.Step()
		if needsHeal {
			s.record(tick, fmt.Sprintf("%s healed (Γ now %.3f)", a.Name, a.Position().Gamma), "healing")
		}
	}

	for _, p := range s.Pairs {
		sync := p.CoupledStep()
		if sync < 0.5 {
			s.record(tick, fmt.Sprintf("pair %s/%s desynchronized (%.3f)",
				p.Observer.Name, p.Executor.Name, sync), "coupling")
		}
	}
}

// TickEpoch refreshes aggregate statistics.
func (s *Simulation) TickEpoch(tick uint64) {
	all := s.AllAgents()

	stats := SimStats{AgentCount: len(all)}
	for _, a := range all {
		p := a.Position()
		stats.AvgXi += p.Xi()
		if a.State() == agents.StateConverged {
			stats.Converged++
		}
	}
	if len(all) > 0 {
		stats.AvgXi /= float64(len(all))
	}

	totalFitness := 0.0
	for _, a := range all {
		t := a.Telemetry()
		totalFitness += t.Metrics.Fitness
		stats.Healings += t.Metrics.HealingCount
		stats.Evolutions += t.Metrics.EvolutionCount
	}
	if len(all) > 0 {
		stats.AvgFitness = totalFitness / float64(len(all))
	}

	for _, p := range s.Pairs {
		stats.AvgSync += p.Synchronization()
	}
	if len(s.Pairs) > 0 {
		stats.AvgSync /= float64(len(s.Pairs))
	}

	s.Stats = stats
}

// TickReport logs a structured summary and trims the event buffer.
func (s *Simulation) TickReport(tick uint64) {
	slog.Info("simulation report",
		"tick", tick,
		"agents", s.Stats.AgentCount,
		"avg_xi", fmt.Sprintf("%.3f", s.Stats.AvgXi),
		"avg_fitness", fmt.Sprintf("%.3f", s.Stats.AvgFitness),
		"avg_sync", fmt.Sprintf("%.3f", s.Stats.AvgSync),
		"healings", s.Stats.Healings,
		"evolutions", s.Stats.Evolutions,
		"converged", s.Stats.Converged,
		"events", len(s.Events),
	)

	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

func (s *Simulation) record(tick uint64, desc, category string) {
	s.Events = append(s.Events, Event{Tick: tick, Description: desc, Category: category})
}
