package density

import (
	"context"
	"math"
	"testing"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
)

func TestHistogramShapeIndependentOfInput(t *testing.T) {
	bins := Bins{X: 128, Y: 96}
	e := DomainExtent(points.DefaultDomain)
	for _, n := range []int{100, 10000} {
		s := points.Generate(n, points.DefaultDomain, points.NewRand(uint64(n)))
		g, err := Histogram(s, bins, e)
		if err != nil {
			t.Fatalf("Histogram(%d points): %v", n, err)
		}
		if g.Cols != 128 || g.Rows != 96 || len(g.Values) != 128*96 {
			t.Errorf("n=%d: grid %dx%d (%d values), want 128x96", n, g.Cols, g.Rows, len(g.Values))
		}
		if got := g.Sum(); got != float64(n) {
			t.Errorf("n=%d: sum = %v, want %d", n, got, n)
		}
	}
}

func TestHistogramBinning(t *testing.T) {
	s := points.Set{
		X: []float64{0, 9.99, 10, 5, -1, 11},
		Y: []float64{0, 0, 10, 5, 5, 5},
	}
	g, err := Histogram(s, Bins{X: 2, Y: 2}, Extent{MaxX: 10, MaxY: 10})
	if err != nil {
		t.Fatal(err)
	}
	// (0,0)→c0r0; (9.99,0)→c1r0; (10,10) upper edge→c1r1; (5,5)→c1r1; two dropped
	want := []float64{1, 1, 0, 2}
	for i, v := range want {
		if g.Values[i] != v {
			t.Errorf("Values = %v, want %v", g.Values, want)
			break
		}
	}
}

func TestHistogramErrors(t *testing.T) {
	e := Extent{MaxX: 1, MaxY: 1}
	if _, err := Histogram(points.Set{X: make([]float64, 5), Y: make([]float64, 4)}, Bins{2, 2}, e); !herrors.Is(err, herrors.ErrCodeLengthMismatch) {
		t.Errorf("mismatch error = %v", err)
	}
	if _, err := Histogram(points.Set{}, Bins{0, 2}, e); !herrors.Is(err, herrors.ErrCodeInvalidInput) {
		t.Errorf("zero bins error = %v", err)
	}
	if _, err := Histogram(points.Set{}, Bins{2, 2}, Extent{}); !herrors.Is(err, herrors.ErrCodeInvalidInput) {
		t.Errorf("empty extent error = %v", err)
	}
}

func TestDataExtent(t *testing.T) {
	e := DataExtent(points.Set{X: []float64{3, 1, 2}, Y: []float64{7, 7, 7}})
	if e.MinX != 1 || e.MaxX != 3 {
		t.Errorf("x extent = [%v,%v], want [1,3]", e.MinX, e.MaxX)
	}
	if e.MinY != 6.5 || e.MaxY != 7.5 {
		t.Errorf("y extent = [%v,%v], want [6.5,7.5]", e.MinY, e.MaxY)
	}
	if e := DataExtent(points.Set{}); e.Width() != 1 || e.Height() != 1 {
		t.Errorf("empty extent = %+v", e)
	}
}

func replicated(n int, x, y float64) points.Set {
	s := points.Set{X: make([]float64, n), Y: make([]float64, n)}
	for i := range s.X {
		s.X[i], s.Y[i] = x, y
	}
	return s
}

func TestFitKDEDegenerate(t *testing.T) {
	tests := []struct {
		name string
		set  points.Set
	}{
		{"empty", points.Set{}},
		{"single point", replicated(1, 10, 10)},
		{"replicated point", replicated(50, 640, 480)},
		{"vertical line", points.Set{X: []float64{5, 5, 5}, Y: []float64{1, 2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitKDE(tt.set, 0.1)
			if !herrors.Is(err, herrors.ErrCodeDegenerateData) {
				t.Errorf("FitKDE error = %v, want degenerate data", err)
			}
		})
	}
}

func TestFitKDEInvalid(t *testing.T) {
	if _, err := FitKDE(points.Set{X: make([]float64, 5), Y: make([]float64, 4)}, 0.1); !herrors.Is(err, herrors.ErrCodeLengthMismatch) {
		t.Errorf("mismatch error = %v", err)
	}
	s := points.Set{X: []float64{0, 1, 2}, Y: []float64{0, 2, 1}}
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := FitKDE(s, f); !herrors.Is(err, herrors.ErrCodeInvalidInput) {
			t.Errorf("factor %v error = %v, want invalid input", f, err)
		}
	}
}

func TestKDEStabilizedReplicatedPoint(t *testing.T) {
	s := points.Stabilize(replicated(20, 640, 480), points.DefaultSentinels)
	k, err := FitKDE(s, 0.1)
	if err != nil {
		t.Fatalf("FitKDE: %v", err)
	}
	g, err := k.Evaluate(context.Background(), points.DefaultDomain)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if g.Cols != 1280 || g.Rows != 960 {
		t.Fatalf("grid = %dx%d, want 1280x960", g.Cols, g.Rows)
	}
	if !g.Finite() {
		t.Fatal("density grid has non-finite values")
	}
	lo, hi := g.Range()
	if lo < 0 || !(hi > 0) {
		t.Errorf("range = [%v,%v]", lo, hi)
	}
	if g.At(640, 480) != hi {
		t.Errorf("peak not at replicated point: At(640,480)=%v, max=%v", g.At(640, 480), hi)
	}
}

func TestKDENormalized(t *testing.T) {
	s := points.Set{
		X: []float64{40, 60, 40, 60, 50},
		Y: []float64{40, 40, 60, 60, 50},
	}
	k, err := FitKDE(s, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// cov is diag(100, 100); kernel covariance diag(25, 25)
	if got := k.Covariance.At(0, 0); math.Abs(got-25) > 1e-9 {
		t.Errorf("kernel var x = %v, want 25", got)
	}
	if got := k.Covariance.At(0, 1); math.Abs(got) > 1e-9 {
		t.Errorf("kernel cov xy = %v, want 0", got)
	}

	g, err := k.Evaluate(context.Background(), points.Domain{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if sum := g.Sum(); math.Abs(sum-1) > 1e-3 {
		t.Errorf("density integrates to %v, want ~1", sum)
	}
	for _, p := range [][2]int{{50, 50}, {40, 60}, {3, 97}} {
		want := k.At(float64(p[0]), float64(p[1]))
		if got := g.At(p[0], p[1]); math.Abs(got-want) > 1e-15 {
			t.Errorf("grid(%d,%d) = %v, At = %v", p[0], p[1], got, want)
		}
	}
	// peak value of one isotropic kernel with sd 5, weighted 1/5
	peak := 1 / (5 * 2 * math.Pi * 25)
	if got := k.At(40, 40); got < peak || got > 1.1*peak {
		t.Errorf("At(40,40) = %v, want just above %v", got, peak)
	}
}

func TestKDEEvaluateCancelled(t *testing.T) {
	s := points.Stabilize(points.Generate(10, points.DefaultDomain, points.NewRand(1)), points.DefaultSentinels)
	k, err := FitKDE(s, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := k.Evaluate(ctx, points.DefaultDomain); err != context.Canceled {
		t.Errorf("Evaluate error = %v, want context.Canceled", err)
	}
}

func TestGridBinaryRoundTrip(t *testing.T) {
	g := NewGrid(3, 2, Extent{MinX: -1, MaxX: 2, MinY: 0, MaxY: 4})
	for i := range g.Values {
		g.Values[i] = float64(i) * 0.25
	}
	data, err := g.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var out Grid
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if out.Cols != 3 || out.Rows != 2 || out.Extent != g.Extent {
		t.Fatalf("decoded header = %dx%d %+v", out.Cols, out.Rows, out.Extent)
	}
	for i := range g.Values {
		if out.Values[i] != g.Values[i] {
			t.Fatalf("value %d = %v, want %v", i, out.Values[i], g.Values[i])
		}
	}

	if err := out.UnmarshalBinary(data[:len(data)-1]); err == nil {
		t.Error("truncated data decoded without error")
	}
	if err := out.UnmarshalBinary([]byte("nope")); err == nil {
		t.Error("garbage decoded without error")
	}
}
