// Command manifoldsim runs a demonstration simulation: a coupled
// observer/executor pair plus solo navigators moving across the 6D
// manifold, with telemetry snapshots persisted to SQLite.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/manifold/internal/agents"
	"github.com/talgya/manifold/internal/engine"
	"github.com/talgya/manifold/internal/geometry"
	"github.com/talgya/manifold/internal/persistence"
	"github.com/talgya/manifold/internal/phys"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("manifoldsim — 6D geodesic agent simulation")
	slog.Info("geometry constants",
		"phi_threshold", phys.PhiThreshold,
		"chi_pc", phys.ChiPC,
		"gamma_fixed", phys.GammaFixed,
		"theta_lock", phys.ThetaLock,
	)

	seed := int64(42)
	if s := os.Getenv("MANIFOLDSIM_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = v
		}
	}
	maxTicks := uint64(5000)
	if s := os.Getenv("MANIFOLDSIM_TICKS"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			maxTicks = v
		}
	}
	dbPath := "data/manifold.db"

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Manifold and agents ───────────────────────────────────────────
	cfg := phys.DefaultConfig()
	m := geometry.New(cfg)
	spawner := agents.NewSpawner(m, cfg, seed)

	pair := spawner.SpawnPair(
		agents.Calibration{
			Name:  "observer-primary",
			Start: geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.9),
		},
		agents.Calibration{
			Name:  "executor-primary",
			Start: geometry.NewPoint(0.9, 0.7, 0.1, 0, 0.5, 0.9),
		},
	)

	navigator := spawner.Spawn(agents.Calibration{
		Name:     "navigator",
		Start:    geometry.NewPoint(0.5, 0.5, 0.25, 0, 0.4, 0.6),
		Operator: agents.OperatorExecutor,
	})
	target := geometry.NewPoint(0.95, 0.9, 0.05, 1, 0.8, 0.95)
	path := navigator.SetTarget(target)
	slog.Info("navigator path solved",
		"points", path.Len(),
		"converged", path.Converged,
	)

	sim := engine.NewSimulation(m)
	sim.AddAgent(navigator)
	sim.AddPair(pair)

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.MaxTicks = maxTicks
	eng.OnTick = sim.TickStep
	eng.OnEpoch = func(tick uint64) {
		sim.TickEpoch(tick)
		if err := db.SaveRun(sim); err != nil {
			slog.Error("epoch save failed", "error", err)
		}
	}
	eng.OnReport = sim.TickReport

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("Simulating %s ticks from seed %d... (Ctrl+C to stop)\n",
		humanize.Comma(int64(maxTicks)), seed)

	eng.Run()

	// ── Final report ──────────────────────────────────────────────────
	sim.TickEpoch(eng.Tick)
	if err := db.SaveRun(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	for _, a := range sim.AllAgents() {
		t := a.Telemetry()
		slog.Info("agent final state",
			"name", t.Name,
			"state", t.State,
			"xi", fmt.Sprintf("%.3f", t.Position.Xi),
			"gamma", fmt.Sprintf("%.3f", t.Position.Gamma),
			"distance", fmt.Sprintf("%.4f", t.Metrics.TotalDistance),
			"healings", t.Metrics.HealingCount,
			"evolutions", t.Metrics.EvolutionCount,
			"generation", humanize.Comma(int64(t.Metrics.Generation)),
		)
	}

	fmt.Printf("Done: %s ticks, final pair sync %.3f.\n",
		humanize.Comma(int64(eng.Tick)), sim.Stats.AvgSync)
}
