// Package analysis provides post-run helpers over particle state and the
// recorded thermo series.
package analysis

import (
	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

// TotalMomentum returns sum(m*v) over all particles.
func TotalMomentum(s *md.ParticleState) md.Vec3 {
	var p md.Vec3
	for i := 0; i < s.N; i++ {
		p = p.Add(s.Vel[i].Scale(s.Mass))
	}
	return p
}

// CenterOfMassVelocity returns the mean velocity. With a single species this
// equals the momentum per unit total mass.
func CenterOfMassVelocity(s *md.ParticleState) md.Vec3 {
	var v md.Vec3
	for i := 0; i < s.N; i++ {
		v = v.Add(s.Vel[i])
	}
	return v.Scale(1.0 / float64(s.N))
}

// DriftCorrectedTemperature computes temperature with the center-of-mass
// motion removed, so a uniformly translating system reads 0 K. The monitor
// records the raw equipartition temperature; this is the variant for
// analyzing systems with residual drift.
func DriftCorrectedTemperature(s *md.ParticleState) float64 {
	com := CenterOfMassVelocity(s)
	ke := 0.0
	for i := 0; i < s.N; i++ {
		for a := 0; a < 3; a++ {
			d := s.Vel[i][a] - com[a]
			ke += d * d
		}
	}
	ke *= 0.5 * s.Mass
	return 2.0 * ke / (3.0 * float64(s.N) * units.Boltzmann)
}

// RunningAverage smooths data with a trailing window of the given size.
// The result has len(data)-window+1 points; it is nil when the window does
// not fit.
func RunningAverage(data []float64, window int) []float64 {
	if window <= 0 || window > len(data) {
		return nil
	}
	out := make([]float64, len(data)-window+1)
	sum := 0.0
	for i, x := range data {
		sum += x
		if i >= window {
			sum -= data[i-window]
		}
		if i >= window-1 {
			out[i-window+1] = sum / float64(window)
		}
	}
	return out
}

// Temperatures extracts the temperature column from a thermo series.
func Temperatures(samples []md.ThermoSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Temperature
	}
	return out
}

// KineticEnergies extracts the kinetic energy column from a thermo series.
func KineticEnergies(samples []md.ThermoSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.KineticEnergy
	}
	return out
}
