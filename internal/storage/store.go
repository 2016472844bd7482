// Package storage persists run metadata and thermo series under a data
// directory, one subdirectory per run.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/langevin/internal/md"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Seed            int64     `json:"seed"`
	Natoms          int       `json:"natoms"`
	Dt              float64   `json:"dt"`
	Nsteps          int       `json:"nsteps"`
	BoundaryType    string    `json:"boundary_type"`
	Temperature     float64   `json:"temperature"`
	RelaxationTime  float64   `json:"relaxation_time"`
	MeanTemperature float64   `json:"mean_temperature"`
	StdTemperature  float64   `json:"std_temperature"`
	Snapshots       int       `json:"snapshots"`
}

// Save writes metadata.json and thermo.csv for a completed run and returns
// the generated run ID.
func (s *Store) Save(meta RunMetadata, samples []md.ThermoSample) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "thermo.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&samples, csvFile); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load returns the metadata for one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the thermo series of a stored run.
func (s *Store) LoadSamples(runID string) ([]md.ThermoSample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "thermo.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []md.ThermoSample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}
