package storage

import (
	"testing"

	"github.com/san-kum/langevin/internal/md"
)

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	samples := []md.ThermoSample{
		{Step: 0, Time: 1e-15, Temperature: 295.2, KineticEnergy: 6.1e-18},
		{Step: 1, Time: 2e-15, Temperature: 301.7, KineticEnergy: 6.3e-18},
	}
	meta := RunMetadata{
		Seed:            42,
		Natoms:          1000,
		Nsteps:          2,
		Dt:              1e-15,
		Temperature:     300,
		RelaxationTime:  1e-12,
		BoundaryType:    "reflective",
		MeanTemperature: 298.45,
		Snapshots:       2,
	}

	runID, err := st.Save(meta, samples)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != runID || loaded.Natoms != 1000 || loaded.BoundaryType != "reflective" {
		t.Errorf("metadata mismatch: %+v", loaded)
	}

	got, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Step != 0 || got[1].Step != 1 {
		t.Errorf("sample steps: %d %d", got[0].Step, got[1].Step)
	}
	if got[1].Temperature != 301.7 {
		t.Errorf("sample temperature: %v", got[1].Temperature)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Natoms: 10}, []md.ThermoSample{{Step: 0}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Natoms != 10 {
		t.Errorf("expected the saved run, got %+v", runs)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}
