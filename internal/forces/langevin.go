// Package forces implements the per-particle force models.
package forces

import (
	"math"
	"math/rand"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

// Langevin computes the thermostat force
//
//	F = -gamma*m*v + F_random
//
// where each component of F_random is an independent normal draw with
// variance 2*m*kB*T*gamma/dt, the discrete form of the
// fluctuation-dissipation relation.
type Langevin struct {
	gamma float64
	sigma float64 // random force std dev per component
	rng   *rand.Rand
}

// NewLangevin validates the parameters and builds the force model around the
// injected random source.
func NewLangevin(p md.LangevinParams, rng *rand.Rand) (*Langevin, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	gamma := p.Gamma()
	return &Langevin{
		gamma: gamma,
		sigma: math.Sqrt(2.0 * p.Mass * units.Boltzmann * p.Temperature * gamma / p.Dt),
		rng:   rng,
	}, nil
}

// Compute fills f with the Langevin force for every particle. f must have
// length s.N.
func (l *Langevin) Compute(s *md.ParticleState, f []md.Vec3) error {
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			friction := -l.gamma * s.Mass * s.Vel[i][a]
			f[i][a] = friction + l.sigma*l.rng.NormFloat64()
		}
	}
	return nil
}

// Free is the zero-force model: no friction, no thermal noise. With it the
// system performs ballistic motion.
type Free struct{}

func NewFree() *Free { return &Free{} }

func (*Free) Compute(s *md.ParticleState, f []md.Vec3) error {
	for i := range f {
		f[i] = md.Vec3{}
	}
	return nil
}
