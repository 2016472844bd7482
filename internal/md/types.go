package md

// Vec3 is a 3-component cartesian vector.
type Vec3 [3]float64

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Norm2 returns the squared euclidean norm.
func (v Vec3) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// ParticleState holds the mutable per-particle state of the system.
// Pos and Vel always have the same length; N is fixed at construction.
// Single species: every particle carries the same mass (kg per particle).
type ParticleState struct {
	N    int
	Mass float64
	Pos  []Vec3
	Vel  []Vec3
}

// Clone returns a deep copy of the state.
func (s *ParticleState) Clone() *ParticleState {
	c := &ParticleState{
		N:    s.N,
		Mass: s.Mass,
		Pos:  make([]Vec3, len(s.Pos)),
		Vel:  make([]Vec3, len(s.Vel)),
	}
	copy(c.Pos, s.Pos)
	copy(c.Vel, s.Vel)
	return c
}

// Box is an axis-aligned simulation box: [Lo[i], Hi[i]] per axis.
type Box struct {
	Lo Vec3
	Hi Vec3
}

// Length returns the box extent along the given axis.
func (b Box) Length(axis int) float64 {
	return b.Hi[axis] - b.Lo[axis]
}

// Contains reports whether p lies inside the box on every axis.
func (b Box) Contains(p Vec3) bool {
	for a := 0; a < 3; a++ {
		if p[a] < b.Lo[a] || p[a] > b.Hi[a] {
			return false
		}
	}
	return true
}

// Validate checks that every axis has lo < hi.
func (b Box) Validate() error {
	for a := 0; a < 3; a++ {
		if b.Lo[a] >= b.Hi[a] {
			return invalidParamf("box axis %d: lo (%g) must be < hi (%g)", a, b.Lo[a], b.Hi[a])
		}
	}
	return nil
}

// LangevinParams are the thermostat parameters, immutable for a run.
type LangevinParams struct {
	Temperature    float64 // K
	RelaxationTime float64 // s
	Dt             float64 // s
	Mass           float64 // kg per particle
}

// Gamma returns the friction coefficient 1/tau.
func (p LangevinParams) Gamma() float64 {
	return 1.0 / p.RelaxationTime
}

// Validate checks the physical preconditions: tau > 0, dt > 0, m > 0, T >= 0.
func (p LangevinParams) Validate() error {
	if p.RelaxationTime <= 0 {
		return invalidParamf("relaxation time must be positive, got %g", p.RelaxationTime)
	}
	if p.Dt <= 0 {
		return invalidParamf("dt must be positive, got %g", p.Dt)
	}
	if p.Mass <= 0 {
		return invalidParamf("mass must be positive, got %g", p.Mass)
	}
	if p.Temperature < 0 {
		return invalidParamf("temperature cannot be negative, got %g", p.Temperature)
	}
	return nil
}

// ThermoSample is one per-step thermodynamic record.
type ThermoSample struct {
	Step          int     `csv:"step" json:"step"`
	Time          float64 `csv:"time" json:"time"`
	Temperature   float64 `csv:"temperature" json:"temperature"`
	KineticEnergy float64 `csv:"kinetic_energy" json:"kinetic_energy"`
}

// Snapshot is an immutable copy of the system at one dump event.
type Snapshot struct {
	Step       int
	Time       float64
	Box        Box
	Positions  []Vec3
	Velocities []Vec3
}

// ForceModel computes per-particle forces into f, which has length state.N.
type ForceModel interface {
	Compute(s *ParticleState, f []Vec3) error
}

// Integrator advances the state by one timestep in place.
type Integrator interface {
	Step(s *ParticleState, f []Vec3, dt float64) error
}

// Boundary enforces box constraints in place after each step. Post-condition:
// every coordinate lies within its axis interval.
type Boundary interface {
	Apply(s *ParticleState)
}

// Monitor records thermodynamic observables once per step.
type Monitor interface {
	Record(step int, time float64, s *ParticleState) ThermoSample
}

// SnapshotSink receives periodic snapshots; the trajectory writer lives
// behind this interface.
type SnapshotSink interface {
	WriteSnapshot(snap Snapshot) error
}

// Observer is notified after each completed step when the engine runs
// verbose. Observers must not mutate the sample.
type Observer interface {
	OnStep(sample ThermoSample)
}
