// Package integrators implements timestep integration schemes.
package integrators

import (
	"fmt"

	"github.com/san-kum/langevin/internal/md"
)

// Euler is the explicit forward Euler scheme:
//
//	x(t+dt) = x(t) + v(t)*dt
//	v(t+dt) = v(t) + F(t)/m*dt
//
// The position update uses the pre-update velocity; that ordering is the
// contract that distinguishes this from the semi-implicit variant.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step advances the state in place by one timestep.
func (e *Euler) Step(s *md.ParticleState, f []md.Vec3, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", md.ErrInvalidParameter, dt)
	}
	if s.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", md.ErrInvalidParameter, s.Mass)
	}

	invMass := 1.0 / s.Mass
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			s.Pos[i][a] += s.Vel[i][a] * dt
			s.Vel[i][a] += f[i][a] * invMass * dt
		}
	}
	return nil
}
