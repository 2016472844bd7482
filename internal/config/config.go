// Package config provides YAML configuration loading for simulation runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

const (
	DefaultNatoms        = 1000
	DefaultTemperature   = 300.0
	DefaultDt            = units.Femtosecond
	DefaultRelaxation    = units.Picosecond
	DefaultNsteps        = 10000
	DefaultDumpFrequency = 100
	DefaultBoundaryType  = "reflective"
)

// Config mirrors the YAML configuration surface. Mass is in kg/mol; all
// other quantities are SI.
type Config struct {
	Natoms         int           `yaml:"natoms"`
	Mass           float64       `yaml:"mass"`
	Box            [3][2]float64 `yaml:"box"`
	Temperature    float64       `yaml:"temperature"`
	Dt             float64       `yaml:"dt"`
	RelaxationTime float64       `yaml:"relaxation_time"`
	Nsteps         int           `yaml:"nsteps"`
	BoundaryType   string        `yaml:"boundary_type"`
	DumpFrequency  int           `yaml:"dump_frequency"`
	Radius         float64       `yaml:"radius"`
	Seed           int64         `yaml:"seed"`
	OutputFile     string        `yaml:"output_file"`
	Compression    string        `yaml:"compression"`
	Verbose        bool          `yaml:"verbose"`
	CheckFinite    bool          `yaml:"check_finite"`
}

// DefaultConfig is a 300 K hydrogen gas in a 10 nm reflective box.
func DefaultConfig() *Config {
	box := [2]float64{0, 10 * units.Nanometer}
	return &Config{
		Natoms:         DefaultNatoms,
		Mass:           units.HydrogenMass,
		Box:            [3][2]float64{box, box, box},
		Temperature:    DefaultTemperature,
		Dt:             DefaultDt,
		RelaxationTime: DefaultRelaxation,
		Nsteps:         DefaultNsteps,
		BoundaryType:   DefaultBoundaryType,
		DumpFrequency:  DefaultDumpFrequency,
		Radius:         units.HydrogenRadius,
		Verbose:        true,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the per-field invariants. Components re-check their own
// preconditions at first use; this pass just gives earlier, friendlier
// messages for config files.
func (c *Config) Validate() error {
	if c.Natoms <= 0 {
		return fmt.Errorf("%w: natoms must be positive, got %d", md.ErrInvalidParameter, c.Natoms)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", md.ErrInvalidParameter, c.Mass)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("%w: temperature cannot be negative, got %g", md.ErrInvalidParameter, c.Temperature)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", md.ErrInvalidParameter, c.Dt)
	}
	if c.RelaxationTime <= 0 {
		return fmt.Errorf("%w: relaxation_time must be positive, got %g", md.ErrInvalidParameter, c.RelaxationTime)
	}
	if c.Nsteps <= 0 {
		return fmt.Errorf("%w: nsteps must be positive, got %d", md.ErrInvalidParameter, c.Nsteps)
	}
	if c.DumpFrequency <= 0 {
		return fmt.Errorf("%w: dump_frequency must be positive, got %d", md.ErrInvalidParameter, c.DumpFrequency)
	}
	if err := c.ToBox().Validate(); err != nil {
		return err
	}
	if c.BoundaryType != "reflective" && c.BoundaryType != "periodic" {
		return fmt.Errorf("%w: boundary_type must be reflective or periodic, got %q",
			md.ErrInvalidParameter, c.BoundaryType)
	}
	return nil
}

// ToBox converts the [lo,hi] axis pairs into a simulation box.
func (c *Config) ToBox() md.Box {
	var b md.Box
	for a := 0; a < 3; a++ {
		b.Lo[a] = c.Box[a][0]
		b.Hi[a] = c.Box[a][1]
	}
	return b
}

// PerParticleMass converts the molar mass to kg per particle.
func (c *Config) PerParticleMass() float64 {
	return c.Mass / units.Avogadro
}

// Params builds the thermostat parameter block.
func (c *Config) Params() md.LangevinParams {
	return md.LangevinParams{
		Temperature:    c.Temperature,
		RelaxationTime: c.RelaxationTime,
		Dt:             c.Dt,
		Mass:           c.PerParticleMass(),
	}
}
