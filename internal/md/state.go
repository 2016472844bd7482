package md

import (
	"math"
	"math/rand"
)

// NewParticleState allocates a zeroed state for n particles of the given
// per-particle mass.
func NewParticleState(n int, mass float64) (*ParticleState, error) {
	if n <= 0 {
		return nil, invalidParamf("particle count must be positive, got %d", n)
	}
	if mass <= 0 {
		return nil, invalidParamf("mass must be positive, got %g", mass)
	}
	return &ParticleState{
		N:    n,
		Mass: mass,
		Pos:  make([]Vec3, n),
		Vel:  make([]Vec3, n),
	}, nil
}

// NewRandomState builds a state with positions uniform inside the box and
// standard-normal velocities with the center-of-mass drift removed. The
// caller provides the random source so runs are reproducible.
func NewRandomState(n int, mass float64, box Box, rng *rand.Rand) (*ParticleState, error) {
	s, err := NewParticleState(n, mass)
	if err != nil {
		return nil, err
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			s.Pos[i][a] = box.Lo[a] + box.Length(a)*rng.Float64()
			s.Vel[i][a] = rng.NormFloat64()
		}
	}

	// Remove center-of-mass motion so the box frame is the rest frame.
	var com Vec3
	for i := 0; i < n; i++ {
		com = com.Add(s.Vel[i])
	}
	com = com.Scale(1.0 / float64(n))
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			s.Vel[i][a] -= com[a]
		}
	}

	return s, nil
}

// IsFinite reports whether every position and velocity component is finite.
func (s *ParticleState) IsFinite() bool {
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			if !isFinite(s.Pos[i][a]) || !isFinite(s.Vel[i][a]) {
				return false
			}
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
