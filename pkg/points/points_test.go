package points

import (
	"testing"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

func TestGenerate(t *testing.T) {
	rng := NewRand(7)
	for _, n := range []int{0, 1, 1000} {
		s := Generate(n, DefaultDomain, rng)
		if len(s.X) != n || len(s.Y) != n {
			t.Fatalf("Generate(%d) lengths = %d,%d", n, len(s.X), len(s.Y))
		}
		for i := range s.X {
			if s.X[i] < 0 || s.X[i] >= 1280 {
				t.Errorf("x[%d] = %v out of [0,1280)", i, s.X[i])
			}
			if s.Y[i] < 0 || s.Y[i] >= 960 {
				t.Errorf("y[%d] = %v out of [0,960)", i, s.Y[i])
			}
			if s.X[i] != float64(int(s.X[i])) || s.Y[i] != float64(int(s.Y[i])) {
				t.Errorf("point %d = (%v,%v) is not integral", i, s.X[i], s.Y[i])
			}
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	tests := []struct {
		name string
		n    int
		d    Domain
	}{
		{"negative n", -3, DefaultDomain},
		{"zero domain", 10, Domain{}},
		{"zero width", 10, Domain{Width: 0, Height: 960}},
		{"negative height", 10, Domain{Width: 1280, Height: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Generate(tt.n, tt.d, NewRand(1))
			if len(s.X) != 0 || len(s.Y) != 0 {
				t.Errorf("Generate(%d, %+v) lengths = %d,%d, want 0", tt.n, tt.d, len(s.X), len(s.Y))
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(50, DefaultDomain, NewRand(42))
	b := Generate(50, DefaultDomain, NewRand(42))
	for i := range a.X {
		if a.X[i] != b.X[i] || a.Y[i] != b.Y[i] {
			t.Fatalf("point %d differs for equal seeds", i)
		}
	}
}

func TestStabilize(t *testing.T) {
	orig := Set{X: []float64{1, 2, 3}, Y: []float64{4, 5, 6}}
	got := Stabilize(orig, DefaultSentinels)

	if got.Len() != 7 || len(got.Y) != 7 {
		t.Fatalf("lengths = %d,%d, want 7,7", len(got.X), len(got.Y))
	}
	for i := 0; i < 3; i++ {
		if got.X[i] != orig.X[i] || got.Y[i] != orig.Y[i] {
			t.Errorf("point %d changed: got (%v,%v)", i, got.X[i], got.Y[i])
		}
	}
	want := []Point{{1500, 1000}, {-100, -100}, {1500, -100}, {-100, 1000}}
	for i, p := range want {
		if got.At(3+i) != p {
			t.Errorf("sentinel %d = %v, want %v", i, got.At(3+i), p)
		}
	}
	if len(orig.X) != 3 || len(orig.Y) != 3 {
		t.Error("Stabilize modified its input")
	}
}

func TestStabilizeDoesNotAlias(t *testing.T) {
	x := make([]float64, 2, 10)
	y := make([]float64, 2, 10)
	got := Stabilize(Set{X: x, Y: y}, DefaultSentinels)
	got.X[0] = 99
	if x[0] != 0 {
		t.Error("Stabilize result shares storage with input")
	}
}

func TestStabilizeMismatchedInput(t *testing.T) {
	got := Stabilize(Set{X: []float64{1, 2}, Y: []float64{1}}, DefaultSentinels)
	if len(got.X) != 6 || len(got.Y) != 5 {
		t.Errorf("lengths = %d,%d, want 6,5", len(got.X), len(got.Y))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		wantErr bool
	}{
		{"both empty", 0, 0, false},
		{"equal", 4, 4, false},
		{"x longer", 5, 4, true},
		{"y longer", 1, 2, true},
		{"x empty", 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(make([]float64, tt.x), make([]float64, tt.y))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%d,%d) error = %v, wantErr %v", tt.x, tt.y, err, tt.wantErr)
			}
			if err != nil && !herrors.Is(err, herrors.ErrCodeLengthMismatch) {
				t.Errorf("code = %v, want %v", herrors.GetCode(err), herrors.ErrCodeLengthMismatch)
			}
		})
	}
}
