// Package thermo derives temperature and kinetic energy from particle state
// and accumulates the per-step time series.
package thermo

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

// KineticEnergy returns the total kinetic energy sum(1/2 m |v|^2) in joules.
func KineticEnergy(s *md.ParticleState) float64 {
	ke := 0.0
	for i := 0; i < s.N; i++ {
		ke += s.Vel[i].Norm2()
	}
	return 0.5 * s.Mass * ke
}

// Temperature returns the instantaneous temperature from equipartition over
// 3 translational degrees of freedom: T = 2*KE / (3*N*kB).
func Temperature(s *md.ParticleState) float64 {
	return 2.0 * KineticEnergy(s) / (3.0 * float64(s.N) * units.Boltzmann)
}

// Monitor accumulates one ThermoSample per recorded step. The series is
// append-only and monotonically increasing in step index.
type Monitor struct {
	samples []md.ThermoSample
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// Record appends and returns the sample for the current state.
func (m *Monitor) Record(step int, time float64, s *md.ParticleState) md.ThermoSample {
	sample := md.ThermoSample{
		Step:          step,
		Time:          time,
		Temperature:   Temperature(s),
		KineticEnergy: KineticEnergy(s),
	}
	m.samples = append(m.samples, sample)
	return sample
}

// Samples returns the accumulated series. The slice is shared; callers must
// treat it as read-only.
func (m *Monitor) Samples() []md.ThermoSample {
	return m.samples
}

// Len returns the number of recorded samples.
func (m *Monitor) Len() int {
	return len(m.samples)
}

// MovingAverage returns the windowed running mean of the temperature series.
// The result has len(samples)-window+1 points. The window must satisfy
// 0 < window <= len(samples).
func (m *Monitor) MovingAverage(window int) ([]float64, error) {
	if window <= 0 || window > len(m.samples) {
		return nil, fmt.Errorf("%w: moving average window must be in [1, %d], got %d",
			md.ErrInvalidParameter, len(m.samples), window)
	}
	out := make([]float64, len(m.samples)-window+1)
	sum := 0.0
	for i, s := range m.samples {
		sum += s.Temperature
		if i >= window {
			sum -= m.samples[i-window].Temperature
		}
		if i >= window-1 {
			out[i-window+1] = sum / float64(window)
		}
	}
	return out, nil
}

// Summary holds aggregate statistics over the recorded series.
type Summary struct {
	MeanTemperature   float64
	StdDevTemperature float64
	MeanKineticEnergy float64
}

// Summarize computes mean and standard deviation over the whole series.
func (m *Monitor) Summarize() Summary {
	if len(m.samples) == 0 {
		return Summary{}
	}
	temps := make([]float64, len(m.samples))
	kes := make([]float64, len(m.samples))
	for i, s := range m.samples {
		temps[i] = s.Temperature
		kes[i] = s.KineticEnergy
	}
	mean, std := stat.MeanStdDev(temps, nil)
	return Summary{
		MeanTemperature:   mean,
		StdDevTemperature: std,
		MeanKineticEnergy: stat.Mean(kes, nil),
	}
}
