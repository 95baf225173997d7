package persistence_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manifold/internal/agents"
	"github.com/talgya/manifold/internal/engine"
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/persistence"
	"github.com/talgya/manifold/internal/phys"
)

func openTestDB(t *testing.T) *persistence.DB {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDB_MetaRoundTrip verifies key-value metadata storage.
func TestDB_MetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveMeta("seed", "42"))
	v, err := db.GetMeta("seed")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	// Upsert.
	require.NoError(t, db.SaveMeta("seed", "43"))
	v, err = db.GetMeta("seed")
	require.NoError(t, err)
	assert.Equal(t, "43", v)

	_, err = db.GetMeta("missing")
	assert.Error(t, err)
}

// TestDB_TelemetryRoundTrip verifies telemetry rows survive a write and
// read back in recency order.
func TestDB_TelemetryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	rec := agents.Telemetry{
		AgentID: "a-1",
		Name:    "walker",
		State:   "navigating",
		Position: agents.PositionRecord{
			Lambda: 0.9, Phi: 0.8, Gamma: 0.1, Xi: 7.2,
		},
		Metrics: agents.MetricsRecord{
			TotalDistance:  1.5,
			HealingCount:   2,
			EvolutionCount: 3,
			Generation:     4,
			Fitness:        0.94,
		},
	}
	require.NoError(t, db.SaveTelemetry(10, []agents.Telemetry{rec}))
	require.NoError(t, db.SaveTelemetry(20, []agents.Telemetry{rec}))

	rows, err := db.RecentTelemetry(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	latest := rows[0]
	assert.Equal(t, uint64(20), latest.Tick, "most recent row first")
	assert.Equal(t, "a-1", latest.AgentID)
	assert.Equal(t, "walker", latest.Name)
	assert.Equal(t, "navigating", latest.State)
	assert.InDelta(t, 7.2, latest.Xi, 1e-12)
	assert.InDelta(t, 0.1, latest.Gamma, 1e-12)
	assert.InDelta(t, 1.5, latest.TotalDistance, 1e-12)
	assert.Equal(t, 2, latest.HealingCount)
	assert.Equal(t, 3, latest.EvolutionCount)
	assert.Equal(t, 4, latest.Generation)
	assert.InDelta(t, 0.94, latest.Fitness, 1e-12)
}

// TestDB_SaveTelemetryEmpty verifies an empty batch is a no-op.
func TestDB_SaveTelemetryEmpty(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveTelemetry(1, nil))

	rows, err := db.RecentTelemetry(10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestDB_EventsRoundTrip verifies event storage and recency ordering.
func TestDB_EventsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	events := []engine.Event{
		{Tick: 1, Description: "walker healed", Category: "healing"},
		{Tick: 2, Description: "pair desynchronized", Category: "coupling"},
	}
	require.NoError(t, db.SaveEvents(events))

	got, err := db.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].Tick, "most recent event first")
	assert.Equal(t, "coupling", got[0].Category)
	assert.Equal(t, "walker healed", got[1].Description)
}

// TestDB_SaveRun snapshots a live simulation: one telemetry row per
// agent, buffered events flushed and cleared, last tick persisted.
func TestDB_SaveRun(t *testing.T) {
	db := openTestDB(t)

	cfg := phys.DefaultConfig()
	m := geometry.New(cfg)
	sim := engine.NewSimulation(m)

	spawner := agents.NewSpawner(m, cfg, 1)
	sim.AddAgent(spawner.Spawn(agents.Calibration{
		Name:  "walker",
		Start: geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.9),
	}))
	sim.LastTick = 7
	sim.Events = append(sim.Events, engine.Event{Tick: 7, Description: "x", Category: "navigation"})

	require.NoError(t, db.SaveRun(sim))
	assert.Empty(t, sim.Events, "flushed events are cleared")

	rows, err := db.RecentTelemetry(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(7), rows[0].Tick)
	assert.Equal(t, "walker", rows[0].Name)

	tick, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.Equal(t, "7", tick)
}
