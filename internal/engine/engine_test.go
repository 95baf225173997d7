package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manifold/internal/agents"
	"github.com/talgya/manifold/internal/engine"
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/phys"
)

// TestEngine_CallbackCadence verifies ticks, epochs, and reports fire at
// their configured intervals.
func TestEngine_CallbackCadence(t *testing.T) {
	eng := engine.NewEngine()
	eng.MaxTicks = 1000

	var ticks, epochs, reports int
	eng.OnTick = func(uint64) { ticks++ }
	eng.OnEpoch = func(uint64) { epochs++ }
	eng.OnReport = func(uint64) { reports++ }

	eng.Run()

	assert.Equal(t, 1000, ticks)
	assert.Equal(t, 10, epochs, "every %d ticks", engine.TicksPerEpoch)
	assert.Equal(t, 1, reports, "every %d ticks", engine.TicksPerReport)
	assert.Equal(t, uint64(1000), eng.Tick)
	assert.False(t, eng.Running.Load())
}

// TestEngine_Stop verifies a callback can halt the loop mid-run.
func TestEngine_Stop(t *testing.T) {
	eng := engine.NewEngine()
	eng.OnTick = func(tick uint64) {
		if tick == 5 {
			eng.Stop()
		}
	}

	eng.Run()
	assert.Equal(t, uint64(5), eng.Tick)
}

// TestEngine_StopFromAnotherGoroutine verifies the signal-handler
// pattern: Stop called off the run loop's goroutine halts it cleanly.
func TestEngine_StopFromAnotherGoroutine(t *testing.T) {
	eng := engine.NewEngine()

	trigger := make(chan struct{})
	eng.OnTick = func(tick uint64) {
		if tick == 3 {
			close(trigger)
		}
	}
	go func() {
		<-trigger
		eng.Stop()
	}()

	eng.Run()
	assert.GreaterOrEqual(t, eng.Tick, uint64(3))
	assert.False(t, eng.Running.Load())
}

// TestSimulation_TickStepAndStats runs a pathless agent through one tick
// and checks the aggregated statistics.
func TestSimulation_TickStepAndStats(t *testing.T) {
	cfg := phys.DefaultConfig()
	m := geometry.New(cfg)
	sim := engine.NewSimulation(m)

	spawner := agents.NewSpawner(m, cfg, 1)
	a := spawner.Spawn(agents.Calibration{
		Name:  "idle",
		Start: geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.9),
	})
	sim.AddAgent(a)

	sim.TickStep(1)
	assert.Equal(t, uint64(1), sim.LastTick)
	assert.Equal(t, agents.StateConverged, a.State(), "no path means immediate convergence")

	sim.TickEpoch(1)
	assert.Equal(t, 1, sim.Stats.AgentCount)
	assert.Equal(t, 1, sim.Stats.Converged)
	assert.InDelta(t, a.Position().Xi(), sim.Stats.AvgXi, 1e-12)
}

// TestSimulation_AllAgents verifies solo and paired agents are both
// enumerated.
func TestSimulation_AllAgents(t *testing.T) {
	cfg := phys.DefaultConfig()
	m := geometry.New(cfg)
	sim := engine.NewSimulation(m)
	spawner := agents.NewSpawner(m, cfg, 1)

	sim.AddAgent(spawner.Spawn(agents.Calibration{Name: "solo", Start: geometry.DefaultPoint()}))
	sim.AddPair(spawner.SpawnPair(
		agents.Calibration{Name: "obs", Start: geometry.DefaultPoint()},
		agents.Calibration{Name: "exec", Start: geometry.DefaultPoint()},
	))

	require.Len(t, sim.AllAgents(), 3)
}

// TestSimulation_HealingEventRecorded verifies that a decoherent agent's
// healing tick lands in the event buffer.
func TestSimulation_HealingEventRecorded(t *testing.T) {
	cfg := phys.DefaultConfig()
	m := geometry.New(cfg)
	sim := engine.NewSimulation(m)
	spawner := agents.NewSpawner(m, cfg, 1)

	sim.AddAgent(spawner.Spawn(agents.Calibration{
		Name:  "sick",
		Start: geometry.NewPoint(0.8, 0.7, 0.5, 0, 0.5, 0.2),
	}))

	sim.TickStep(3)
	require.Len(t, sim.Events, 1)
	assert.Equal(t, uint64(3), sim.Events[0].Tick)
	assert.Equal(t, "healing", sim.Events[0].Category)
}

// TestSimulation_TickReportTrims verifies the event buffer is bounded.
func TestSimulation_TickReportTrims(t *testing.T) {
	sim := engine.NewSimulation(geometry.New(phys.DefaultConfig()))
	for i := 0; i < 1100; i++ {
		sim.Events = append(sim.Events, engine.Event{
			Tick:        uint64(i),
			Description: fmt.Sprintf("event %d", i),
			Category:    "navigation",
		})
	}

	sim.TickReport(1100)
	assert.Len(t, sim.Events, 1000, "buffer trims to its cap")
	assert.Equal(t, uint64(100), sim.Events[0].Tick, "oldest events are dropped")
}
