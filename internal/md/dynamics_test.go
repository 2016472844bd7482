package md_test

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/langevin/internal/boundary"
	"github.com/san-kum/langevin/internal/forces"
	"github.com/san-kum/langevin/internal/integrators"
	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/thermo"
	"github.com/san-kum/langevin/internal/units"
)

var _ = Describe("free ballistic motion", func() {
	It("advances positions as x + v*dt with constant velocity", func() {
		state, err := md.NewParticleState(3, 1.0)
		Expect(err).NotTo(HaveOccurred())
		state.Pos[0] = md.Vec3{100, 100, 100}
		state.Pos[1] = md.Vec3{200, 150, 50}
		state.Pos[2] = md.Vec3{50, 300, 220}
		state.Vel[0] = md.Vec3{1, -2, 0.5}
		state.Vel[1] = md.Vec3{-0.25, 0, 3}
		state.Vel[2] = md.Vec3{0, 1, -1}

		x0 := state.Clone()

		box := md.Box{Hi: md.Vec3{1000, 1000, 1000}}
		bnd, err := boundary.NewReflective(box)
		Expect(err).NotTo(HaveOccurred())

		mon := thermo.NewMonitor()
		eng := md.New(state, forces.NewFree(), integrators.NewEuler(), bnd, mon, box)

		const steps = 50
		const dt = 0.125
		result, err := eng.Run(context.Background(), md.RunConfig{
			Steps: steps, Dt: dt, DumpFrequency: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(steps))
		Expect(eng.State()).To(Equal(md.Completed))

		for i := 0; i < state.N; i++ {
			for a := 0; a < 3; a++ {
				want := x0.Pos[i][a] + x0.Vel[i][a]*dt*steps
				Expect(state.Pos[i][a]).To(BeNumerically("~", want, 1e-9))
				Expect(state.Vel[i][a]).To(Equal(x0.Vel[i][a]))
			}
		}
	})
})

var _ = Describe("reflective walls with ballistic particles", func() {
	It("reflects two particles off opposite walls in one step", func() {
		state, err := md.NewParticleState(2, 1.0)
		Expect(err).NotTo(HaveOccurred())
		state.Pos[0] = md.Vec3{9.5, 5, 5}
		state.Vel[0] = md.Vec3{1, 0, 0}
		state.Pos[1] = md.Vec3{0.5, 5, 5}
		state.Vel[1] = md.Vec3{-1, 0, 0}

		box := md.Box{Hi: md.Vec3{10, 10, 10}}
		bnd, err := boundary.NewReflective(box)
		Expect(err).NotTo(HaveOccurred())

		mon := thermo.NewMonitor()
		eng := md.New(state, forces.NewFree(), integrators.NewEuler(), bnd, mon, box)

		_, err = eng.Run(context.Background(), md.RunConfig{
			Steps: 1, Dt: 1.0, DumpFrequency: 1,
		})
		Expect(err).NotTo(HaveOccurred())

		// 9.5 + 1.0 = 10.5 mirrors to 9.5; velocity flips.
		Expect(state.Pos[0][0]).To(BeNumerically("~", 9.5, 1e-12))
		Expect(state.Vel[0][0]).To(Equal(-1.0))
		// 0.5 - 1.0 = -0.5 mirrors to 0.5; velocity flips.
		Expect(state.Pos[1][0]).To(BeNumerically("~", 0.5, 1e-12))
		Expect(state.Vel[1][0]).To(Equal(1.0))
	})

	It("keeps every coordinate inside the box over a long run", func() {
		rng := rand.New(rand.NewSource(5))
		box := md.Box{Hi: md.Vec3{10, 10, 10}}
		state, err := md.NewRandomState(50, 1.0, box, rng)
		Expect(err).NotTo(HaveOccurred())
		// Scale up velocities so walls are hit often.
		for i := range state.Vel {
			state.Vel[i] = state.Vel[i].Scale(20)
		}

		bnd, err := boundary.NewReflective(box)
		Expect(err).NotTo(HaveOccurred())

		mon := thermo.NewMonitor()
		eng := md.New(state, forces.NewFree(), integrators.NewEuler(), bnd, mon, box)

		containedSink := sinkFunc(func(snap md.Snapshot) error {
			for _, p := range snap.Positions {
				Expect(snap.Box.Contains(p)).To(BeTrue(), "position %v left the box", p)
			}
			return nil
		})
		eng.SetSink(containedSink)

		_, err = eng.Run(context.Background(), md.RunConfig{
			Steps: 500, Dt: 0.05, DumpFrequency: 1,
		})
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Langevin thermostat", func() {
	It("drives the ensemble to the target temperature", func() {
		const (
			natoms = 200
			target = 300.0
			tau    = 1e-13
			dt     = 1e-15
			steps  = 3000
			burnIn = 1000
		)
		mass := units.HydrogenMass / units.Avogadro
		rng := rand.New(rand.NewSource(12345))

		boxSize := 10 * units.Nanometer
		box := md.Box{Hi: md.Vec3{boxSize, boxSize, boxSize}}
		state, err := md.NewRandomState(natoms, mass, box, rng)
		Expect(err).NotTo(HaveOccurred())

		frc, err := forces.NewLangevin(md.LangevinParams{
			Temperature:    target,
			RelaxationTime: tau,
			Dt:             dt,
			Mass:           mass,
		}, rng)
		Expect(err).NotTo(HaveOccurred())

		bnd, err := boundary.NewPeriodic(box)
		Expect(err).NotTo(HaveOccurred())

		mon := thermo.NewMonitor()
		eng := md.New(state, frc, integrators.NewEuler(), bnd, mon, box)

		_, err = eng.Run(context.Background(), md.RunConfig{
			Steps: steps, Dt: dt, DumpFrequency: steps,
		})
		Expect(err).NotTo(HaveOccurred())

		samples := mon.Samples()
		Expect(samples).To(HaveLen(steps))

		mean := 0.0
		for _, s := range samples[burnIn:] {
			mean += s.Temperature
		}
		mean /= float64(steps - burnIn)

		// Law-of-large-numbers check, not exact equality: for 200
		// non-interacting particles averaged over 2000 correlated samples
		// the time-average sits well within 10% of the target.
		Expect(mean).To(BeNumerically("~", target, target*0.10))
	})

	It("cools a hot system toward the bath temperature", func() {
		const (
			natoms = 100
			target = 100.0
			tau    = 1e-13
			dt     = 1e-15
		)
		mass := units.ArgonMass / units.Avogadro
		rng := rand.New(rand.NewSource(99))

		boxSize := 10 * units.Nanometer
		box := md.Box{Hi: md.Vec3{boxSize, boxSize, boxSize}}
		state, err := md.NewRandomState(natoms, mass, box, rng)
		Expect(err).NotTo(HaveOccurred())
		// Start far above the bath temperature.
		hot := 4000.0
		scale := hotVelocityScale(hot, mass)
		for i := range state.Vel {
			state.Vel[i] = state.Vel[i].Scale(scale)
		}
		Expect(thermo.Temperature(state)).To(BeNumerically(">", 1000))

		frc, err := forces.NewLangevin(md.LangevinParams{
			Temperature:    target,
			RelaxationTime: tau,
			Dt:             dt,
			Mass:           mass,
		}, rng)
		Expect(err).NotTo(HaveOccurred())

		bnd, err := boundary.NewPeriodic(box)
		Expect(err).NotTo(HaveOccurred())

		mon := thermo.NewMonitor()
		eng := md.New(state, frc, integrators.NewEuler(), bnd, mon, box)

		_, err = eng.Run(context.Background(), md.RunConfig{
			Steps: 2000, Dt: dt, DumpFrequency: 2000,
		})
		Expect(err).NotTo(HaveOccurred())

		final := mon.Samples()[mon.Len()-1]
		Expect(final.Temperature).To(BeNumerically("<", 300))
		Expect(final.Temperature).To(BeNumerically(">", 20))
	})
})

type sinkFunc func(md.Snapshot) error

func (f sinkFunc) WriteSnapshot(s md.Snapshot) error { return f(s) }

// hotVelocityScale rescales unit-variance velocity components so the
// instantaneous temperature reads approximately T for the given mass.
func hotVelocityScale(T, mass float64) float64 {
	return math.Sqrt(units.Boltzmann * T / mass)
}
