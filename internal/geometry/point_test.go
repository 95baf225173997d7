package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/manifold/internal/geometry"
)

// TestNewPoint_ClampsDomains verifies that every coordinate is clamped
// into its declared domain on construction.
func TestNewPoint_ClampsDomains(t *testing.T) {
	p := geometry.NewPoint(1.5, 2.0, -0.5, -1.0, 1.2, -0.1)

	assert.Equal(t, 1.0, p.Lambda, "Λ clamps to 1")
	assert.Equal(t, 1.0, p.Phi, "Φ clamps to 1")
	assert.Equal(t, 0.001, p.Gamma, "Γ clamps to its floor")
	assert.Equal(t, 0.0, p.Tau, "τ clamps to 0")
	assert.Equal(t, 1.0, p.Epsilon, "ε clamps to 1")
	assert.Equal(t, 0.0, p.Psi, "ψ clamps to 0")
}

// TestPointFromVector_ClampsPhi guards Ξ and the coherence predicate
// against out-of-domain Φ input: an oversized component clamps to 1
// instead of inflating efficiency.
func TestPointFromVector_ClampsPhi(t *testing.T) {
	p := geometry.PointFromVector([geometry.Dim]float64{0.9, 1.3, 0.1, 0, 0.5, 0.9})

	assert.Equal(t, 1.0, p.Phi, "Φ clamps on deserialization too")
	assert.InDelta(t, 9.0, p.Xi(), 1e-12, "Ξ uses the clamped Φ")
	assert.True(t, p.Coherent())
}

// TestPoint_Xi verifies the negentropic efficiency Ξ = ΛΦ/Γ, including
// the Γ floor for points built from raw literals.
func TestPoint_Xi(t *testing.T) {
	p := geometry.NewPoint(0.9, 0.8, 0.1, 0, 0.5, 0.5)
	assert.InDelta(t, 7.2, p.Xi(), 1e-12, "Ξ = 0.9·0.8/0.1")

	raw := geometry.Point{Lambda: 0.5, Phi: 0.5, Gamma: 0}
	assert.InDelta(t, 250.0, raw.Xi(), 1e-9, "Γ=0 is floored at 0.001")
}

// TestPoint_Coherent checks the Ξ ≥ Ξ_threshold predicate on both sides
// of the boundary.
func TestPoint_Coherent(t *testing.T) {
	below := geometry.NewPoint(0.9, 0.8, 0.1, 0, 0.5, 0.5) // Ξ = 7.2
	assert.False(t, below.Coherent(), "Ξ=7.2 is below the threshold")

	above := geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.5) // Ξ = 8.1
	assert.True(t, above.Coherent(), "Ξ=8.1 is above the threshold")
}

// TestPoint_NeedsHealing checks the strict Γ > 0.3 healing trigger.
func TestPoint_NeedsHealing(t *testing.T) {
	assert.False(t, geometry.NewPoint(0.9, 0.9, 0.1, 0, 0.5, 0.5).NeedsHealing())
	assert.False(t, geometry.NewPoint(0.9, 0.9, 0.3, 0, 0.5, 0.5).NeedsHealing(),
		"threshold itself does not trigger")
	assert.True(t, geometry.NewPoint(0.9, 0.9, 0.35, 0, 0.5, 0.5).NeedsHealing())
}

// TestPointFromSlice verifies the only shape-validated constructor.
func TestPointFromSlice(t *testing.T) {
	p, err := geometry.PointFromSlice([]float64{0.9, 0.8, 0.1, 0.5, 0.6, 0.7})
	assert.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(0.9, 0.8, 0.1, 0.5, 0.6, 0.7), p)

	_, err = geometry.PointFromSlice([]float64{1, 2, 3})
	assert.ErrorIs(t, err, geometry.ErrBadVector, "wrong arity must error")

	_, err = geometry.PointFromSlice(nil)
	assert.ErrorIs(t, err, geometry.ErrBadVector, "nil slice must error")
}

// TestPoint_VectorRoundTrip verifies that an in-domain point survives
// Vector → PointFromVector unchanged.
func TestPoint_VectorRoundTrip(t *testing.T) {
	p := geometry.NewPoint(0.9, 0.8, 0.1, 0.5, 0.6, 0.7)
	assert.Equal(t, p, geometry.PointFromVector(p.Vector()))
}
