// Package engine provides the tick-based loop that drives agents across
// the manifold. All work is synchronous: each tick runs every agent and
// pair to completion before the next begins.
package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Tick cadence for the callback layers.
const (
	TicksPerEpoch  = 100  // stats refresh and telemetry snapshots
	TicksPerReport = 1000 // structured log report
)

// Engine drives the simulation forward.
type Engine struct {
	Tick     uint64        // monotonic tick counter, never resets
	MaxTicks uint64        // stop after this many ticks; 0 = run until Stop
	Interval time.Duration // pacing between ticks; 0 = run flat out
	Running  atomic.Bool   // Stop may be called from another goroutine

	// Callback layers, populated during setup.
	OnTick   func(tick uint64) // every tick
	OnEpoch  func(tick uint64) // every TicksPerEpoch
	OnReport func(tick uint64) // every TicksPerReport
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{}
}

// Run starts the loop. Blocks until Stop is called or MaxTicks elapse.
func (e *Engine) Run() {
	e.Running.Store(true)
	slog.Info("engine started", "tick", e.Tick, "max_ticks", e.MaxTicks)

	for e.Running.Load() {
		e.step()

		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			e.Running.Store(false)
			break
		}
		if e.Interval > 0 {
			time.Sleep(e.Interval)
		}
	}

	slog.Info("engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.Running.Store(false)
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}
	if e.Tick%TicksPerEpoch == 0 && e.OnEpoch != nil {
		e.OnEpoch(e.Tick)
	}
	if e.Tick%TicksPerReport == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}
