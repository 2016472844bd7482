package md

import (
	"context"
	"fmt"
)

// RunState is the engine lifecycle state.
type RunState int

const (
	Configured RunState = iota
	Running
	Completed
	Failed
)

func (s RunState) String() string {
	switch s {
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// RunConfig controls a single run.
type RunConfig struct {
	Steps         int
	Dt            float64
	DumpFrequency int
	Verbose       bool
	CheckFinite   bool
}

func (c RunConfig) validate() error {
	if c.Steps <= 0 {
		return invalidParamf("nsteps must be positive, got %d", c.Steps)
	}
	if c.Dt <= 0 {
		return invalidParamf("dt must be positive, got %g", c.Dt)
	}
	if c.DumpFrequency <= 0 {
		return invalidParamf("dump frequency must be positive, got %d", c.DumpFrequency)
	}
	return nil
}

// Result summarizes a completed run.
type Result struct {
	StepsTaken       int
	FinalTime        float64
	SnapshotsWritten int
	FinalSample      ThermoSample
}

// Engine owns the particle state and drives the per-step pipeline:
// force → integrate → bound → measure → emit.
type Engine struct {
	state     *ParticleState
	force     ForceModel
	integ     Integrator
	boundary  Boundary
	monitor   Monitor
	sink      SnapshotSink
	observers []Observer
	box       Box
	runState  RunState
	force3    []Vec3 // scratch force buffer, reused every step
}

// New builds an engine over the given collaborators. The engine takes
// exclusive ownership of state until the run finishes.
func New(state *ParticleState, force ForceModel, integ Integrator, boundary Boundary, monitor Monitor, box Box) *Engine {
	return &Engine{
		state:    state,
		force:    force,
		integ:    integ,
		boundary: boundary,
		monitor:  monitor,
		box:      box,
		runState: Configured,
		force3:   make([]Vec3, state.N),
	}
}

// SetSink attaches the trajectory writer. A nil sink disables dumping.
func (e *Engine) SetSink(s SnapshotSink) { e.sink = s }

// AddObserver registers a per-step observer, notified only on verbose runs.
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// State returns the engine lifecycle state.
func (e *Engine) State() RunState { return e.runState }

// Particles exposes the particle state; callers must not mutate it while
// the engine is running.
func (e *Engine) Particles() *ParticleState { return e.state }

// Run executes cfg.Steps steps, numbered 0..Steps-1. Snapshots are emitted
// at every step divisible by DumpFrequency (step 0 included) and always at
// the final step. Cancellation is honored at step boundaries only; the step
// already completed is kept. Any component error aborts the run.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	switch e.runState {
	case Running:
		return nil, fmt.Errorf("md: engine already running")
	case Completed, Failed:
		return nil, ErrCompleted
	}
	if err := cfg.validate(); err != nil {
		e.runState = Failed
		return nil, err
	}

	e.runState = Running
	result := &Result{}

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			e.runState = Failed
			return result, ctx.Err()
		default:
		}

		t := float64(step+1) * cfg.Dt

		if err := e.force.Compute(e.state, e.force3); err != nil {
			e.runState = Failed
			return result, &StepError{Step: step, Time: t, Wrapped: err}
		}
		if err := e.integ.Step(e.state, e.force3, cfg.Dt); err != nil {
			e.runState = Failed
			return result, &StepError{Step: step, Time: t, Wrapped: err}
		}
		e.boundary.Apply(e.state)

		if cfg.CheckFinite && !e.state.IsFinite() {
			e.runState = Failed
			return result, &StepError{Step: step, Time: t, Wrapped: ErrUnstable}
		}

		sample := e.monitor.Record(step, t, e.state)
		result.StepsTaken++
		result.FinalTime = t
		result.FinalSample = sample

		if cfg.Verbose {
			for _, o := range e.observers {
				o.OnStep(sample)
			}
		}

		if e.shouldDump(step, cfg) {
			if err := e.emit(step, t); err != nil {
				e.runState = Failed
				return result, &StepError{Step: step, Time: t, Wrapped: err}
			}
			result.SnapshotsWritten++
		}
	}

	e.runState = Completed
	return result, nil
}

// shouldDump pins the cadence policy: dump on multiples of DumpFrequency,
// counting from step 0, and always on the last step.
func (e *Engine) shouldDump(step int, cfg RunConfig) bool {
	if e.sink == nil {
		return false
	}
	return step%cfg.DumpFrequency == 0 || step == cfg.Steps-1
}

func (e *Engine) emit(step int, t float64) error {
	snap := Snapshot{
		Step:       step,
		Time:       t,
		Box:        e.box,
		Positions:  make([]Vec3, e.state.N),
		Velocities: make([]Vec3, e.state.N),
	}
	copy(snap.Positions, e.state.Pos)
	copy(snap.Velocities, e.state.Vel)
	return e.sink.WriteSnapshot(snap)
}
