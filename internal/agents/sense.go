// Package agents provides stateful entities that navigate the manifold:
// they sense local curvature, move along precomputed geodesics, heal when
// decoherence exceeds its threshold, and apply a pluggable per-agent
// evolution operator.
package agents

import "github.com/talgya/manifold/internal/geometry"

// CurvatureSense is the snapshot an agent takes of local geometry.
// Sensing never moves the agent.
type CurvatureSense struct {
	ScalarCurvature    float64               `json:"scalar_curvature"`
	Gradient           [geometry.Dim]float64 `json:"gradient"`
	DecoherenceField   float64               `json:"decoherence_field"`
	CoherencePotential float64               `json:"coherence_potential"`
	Coherent           bool                  `json:"coherent"`
	NeedsHealing       bool                  `json:"needs_healing"`
}

// DangerLevel is a 0–1 measure of local instability.
func (s CurvatureSense) DangerLevel() float64 {
	return min(1, s.DecoherenceField+0.1*abs(s.ScalarCurvature))
}

// NavigationSense is what an agent knows about its current path.
type NavigationSense struct {
	Position        geometry.Point  `json:"position"`
	Target          *geometry.Point `json:"target,omitempty"`
	RemainingLength float64         `json:"remaining_length"`
	Progress        float64         `json:"progress"` // 0–1 along path
	StepsRemaining  int             `json:"steps_remaining"`
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
