// Package entropy provides the seedable randomness source injected into
// agents. All stochastic behavior (mutation triggers, evolution noise)
// flows through a Source so that runs are reproducible from a single seed.
package entropy

import (
	"math/rand"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// axisSpread separates the noise tracks of the six coordinate axes far
// enough that they are effectively independent.
const axisSpread = 17.0

// trackStep advances the smooth-noise sample coordinate per Perturb call.
// Small enough that consecutive perturbations stay correlated.
const trackStep = 0.05

// Source is a deterministic random source. Uniform and normal draws come
// from a seeded math/rand core; Perturb samples a smooth opensimplex
// field so consecutive evolution perturbations vary continuously rather
// than as white noise.
type Source struct {
	mu    sync.Mutex
	rng   *rand.Rand
	noise opensimplex.Noise
	track float64
}

// NewSource creates a source seeded for reproducible runs.
func NewSource(seed int64) *Source {
	return &Source{
		rng:   rand.New(rand.NewSource(seed)),
		noise: opensimplex.NewNormalized(seed),
	}
}

// Fork derives an independent source for a child consumer. Spawners use
// this to give each agent its own stream without sharing lock contention.
func (s *Source) Fork(offset int64) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewSource(s.rng.Int63() + offset)
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Norm returns a standard normal draw.
func (s *Source) Norm() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

// Perturb returns a 6-vector of smooth noise in [-scale, scale], one
// component per coordinate axis. Each call advances the sample track.
func (s *Source) Perturb(scale float64) [6]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.track += trackStep
	var out [6]float64
	for i := range out {
		// NewNormalized yields [0,1]; recenter to [-1,1].
		n := s.noise.Eval2(s.track, float64(i)*axisSpread)
		out[i] = (2*n - 1) * scale
	}
	return out
}
