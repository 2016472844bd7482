package md

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewParticleStateValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		mass float64
	}{
		{"zero count", 0, 1.0},
		{"negative count", -5, 1.0},
		{"zero mass", 10, 0},
		{"negative mass", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParticleState(tt.n, tt.mass); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	s, err := NewParticleState(7, 2.5)
	if err != nil {
		t.Fatalf("NewParticleState: %v", err)
	}
	if s.N != 7 || len(s.Pos) != 7 || len(s.Vel) != 7 {
		t.Errorf("bad dimensions: N=%d len(pos)=%d len(vel)=%d", s.N, len(s.Pos), len(s.Vel))
	}
}

func TestNewRandomState(t *testing.T) {
	box := Box{Lo: Vec3{-5, 0, 10}, Hi: Vec3{5, 2, 30}}
	rng := rand.New(rand.NewSource(99))

	s, err := NewRandomState(200, 1.0, box, rng)
	if err != nil {
		t.Fatalf("NewRandomState: %v", err)
	}

	for i := 0; i < s.N; i++ {
		if !box.Contains(s.Pos[i]) {
			t.Fatalf("particle %d initialized outside box: %v", i, s.Pos[i])
		}
	}

	// Center-of-mass motion is removed at initialization.
	var com Vec3
	for i := 0; i < s.N; i++ {
		com = com.Add(s.Vel[i])
	}
	for a := 0; a < 3; a++ {
		if math.Abs(com[a]/float64(s.N)) > 1e-12 {
			t.Errorf("axis %d: residual COM velocity %v", a, com[a]/float64(s.N))
		}
	}
}

func TestNewRandomStateReproducible(t *testing.T) {
	box := Box{Hi: Vec3{1, 1, 1}}

	a, err := NewRandomState(10, 1.0, box, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRandomState(10, 1.0, box, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if a.Pos[i] != b.Pos[i] || a.Vel[i] != b.Vel[i] {
			t.Fatalf("same seed produced different states at particle %d", i)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s, _ := NewParticleState(2, 1.0)
	s.Pos[0] = Vec3{1, 2, 3}

	c := s.Clone()
	c.Pos[0] = Vec3{9, 9, 9}
	if s.Pos[0] != (Vec3{1, 2, 3}) {
		t.Errorf("clone shares storage with original")
	}
}

func TestIsFinite(t *testing.T) {
	s, _ := NewParticleState(2, 1.0)
	if !s.IsFinite() {
		t.Error("fresh state should be finite")
	}
	s.Vel[1][2] = math.NaN()
	if s.IsFinite() {
		t.Error("NaN velocity not detected")
	}
	s.Vel[1][2] = 0
	s.Pos[0][0] = math.Inf(-1)
	if s.IsFinite() {
		t.Error("infinite position not detected")
	}
}

func TestLangevinParamsGamma(t *testing.T) {
	p := LangevinParams{Temperature: 300, RelaxationTime: 2.0, Dt: 0.1, Mass: 1}
	if p.Gamma() != 0.5 {
		t.Errorf("expected gamma=0.5, got %v", p.Gamma())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}
