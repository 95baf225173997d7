package agents

// Telemetry is the flat per-agent record external reporting layers rely
// on. The wire format is the consumer's business; these structs only fix
// the field set.
type Telemetry struct {
	AgentID    string           `json:"agent_id"`
	Name       string           `json:"name"`
	State      string           `json:"state"`
	Position   PositionRecord   `json:"position"`
	Curvature  CurvatureRecord  `json:"curvature"`
	Navigation NavigationRecord `json:"navigation"`
	Metrics    MetricsRecord    `json:"metrics"`
}

// PositionRecord is the six coordinates plus the derived efficiency.
type PositionRecord struct {
	Lambda  float64 `json:"lambda"`
	Phi     float64 `json:"phi"`
	Gamma   float64 `json:"gamma"`
	Tau     float64 `json:"tau"`
	Epsilon float64 `json:"epsilon"`
	Psi     float64 `json:"psi"`
	Xi      float64 `json:"xi"`
}

// CurvatureRecord is the agent's latest curvature snapshot.
type CurvatureRecord struct {
	Scalar             float64 `json:"scalar"`
	DecoherenceField   float64 `json:"decoherence_field"`
	CoherencePotential float64 `json:"coherence_potential"`
	Coherent           bool    `json:"coherent"`
	DangerLevel        float64 `json:"danger_level"`
}

// NavigationRecord is the agent's path progress.
type NavigationRecord struct {
	HasTarget       bool    `json:"has_target"`
	RemainingLength float64 `json:"remaining_length"`
	Progress        float64 `json:"progress"`
	StepsRemaining  int     `json:"steps_remaining"`
}

// MetricsRecord holds the agent's lifetime counters.
type MetricsRecord struct {
	TotalDistance  float64 `json:"total_distance"`
	HealingCount   int     `json:"healing_count"`
	EvolutionCount int     `json:"evolution_count"`
	Generation     int     `json:"generation"`
	Fitness        float64 `json:"fitness"`
	TrajectoryLen  int     `json:"trajectory_len"`
}

// Telemetry gathers the agent's complete external snapshot. The
// curvature sense is taken first (it locks internally); the remaining
// fields are read under the agent lock.
func (a *Agent) Telemetry() Telemetry {
	sense := a.SenseCurvature()

	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.position
	progress := 0.0
	if a.path.Len() > 1 {
		progress = float64(a.pathIndex) / float64(a.path.Len()-1)
	}
	remaining := 0
	if a.path != nil {
		remaining = a.path.Len() - 1 - a.pathIndex
	}

	return Telemetry{
		AgentID: a.ID.String(),
		Name:    a.Name,
		State:   a.state.String(),
		Position: PositionRecord{
			Lambda:  p.Lambda,
			Phi:     p.Phi,
			Gamma:   p.Gamma,
			Tau:     p.Tau,
			Epsilon: p.Epsilon,
			Psi:     p.Psi,
			Xi:      p.Xi(),
		},
		Curvature: CurvatureRecord{
			Scalar:             sense.ScalarCurvature,
			DecoherenceField:   sense.DecoherenceField,
			CoherencePotential: sense.CoherencePotential,
			Coherent:           sense.Coherent,
			DangerLevel:        sense.DangerLevel(),
		},
		Navigation: NavigationRecord{
			HasTarget:       a.target != nil,
			RemainingLength: a.remainingLengthLocked(),
			Progress:        progress,
			StepsRemaining:  remaining,
		},
		Metrics: MetricsRecord{
			TotalDistance:  a.totalDistance,
			HealingCount:   a.healingCount,
			EvolutionCount: a.evolutionCount,
			Generation:     a.generation,
			Fitness:        a.fitness,
			TrajectoryLen:  len(a.trajectory),
		},
	}
}
