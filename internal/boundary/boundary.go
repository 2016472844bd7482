// Package boundary enforces simulation box constraints on particle state.
package boundary

import (
	"fmt"
	"math"

	"github.com/san-kum/langevin/internal/md"
)

// Kind names for the factory.
const (
	KindReflective = "reflective"
	KindPeriodic   = "periodic"
)

// New builds a boundary handler of the named kind over the given box.
func New(kind string, box md.Box) (md.Boundary, error) {
	switch kind {
	case KindReflective:
		return NewReflective(box)
	case KindPeriodic:
		return NewPeriodic(box)
	default:
		return nil, fmt.Errorf("%w: unknown boundary type %q (want %q or %q)",
			md.ErrInvalidParameter, kind, KindReflective, KindPeriodic)
	}
}

// Reflective mirrors particles back across a violated wall and inverts the
// velocity component along that axis. Axes are handled independently, so a
// corner crossing on two axes reflects on both in the same step.
type Reflective struct {
	box md.Box
}

func NewReflective(box md.Box) (*Reflective, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return &Reflective{box: box}, nil
}

func (r *Reflective) Apply(s *md.ParticleState) {
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			lo, hi := r.box.Lo[a], r.box.Hi[a]
			x := s.Pos[i][a]
			// A large overshoot can cross the box more than once; each
			// crossing is a bounce.
			for x < lo || x > hi {
				if x < lo {
					x = 2*lo - x
				} else {
					x = 2*hi - x
				}
				s.Vel[i][a] = -s.Vel[i][a]
			}
			s.Pos[i][a] = x
		}
	}
}

// Periodic wraps coordinates back into the box using modular arithmetic over
// the axis length; velocities are untouched. Wrapping is idempotent.
type Periodic struct {
	box md.Box
}

func NewPeriodic(box md.Box) (*Periodic, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	return &Periodic{box: box}, nil
}

func (p *Periodic) Apply(s *md.ParticleState) {
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			lo := p.box.Lo[a]
			length := p.box.Length(a)
			x := math.Mod(s.Pos[i][a]-lo, length)
			if x < 0 {
				x += length
			}
			s.Pos[i][a] = lo + x
		}
	}
}
