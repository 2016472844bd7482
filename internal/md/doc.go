// Package md provides the core Langevin dynamics engine.
//
// The package defines the particle state, the simulation box, and the
// interfaces the per-step pipeline is built from:
//
//   - [ParticleState]: positions, velocities and mass of N particles
//   - [ForceModel]: per-particle force computation
//   - [Integrator]: one-timestep state advance
//   - [Boundary]: box constraint enforcement
//   - [Monitor]: temperature/energy bookkeeping
//   - [Engine]: orchestrates force → integrate → bound → measure → emit
//
// # Example
//
//	state, _ := md.NewRandomState(1000, mass, box, rng)
//	frc, _ := forces.NewLangevin(params, rng)
//	eng := md.New(state, frc, integrators.NewEuler(), bnd, monitor)
//	result, _ := eng.Run(ctx, md.RunConfig{Steps: 10000, Dt: params.Dt, DumpFrequency: 100})
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The particle state is owned by the
// engine for the duration of a run and mutated in place each step.
package md
