package points

import (
	"math/rand/v2"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// Point is a single (x, y) coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Set is a coordinate set: X[i] and Y[i] form the i-th point.
// A Set is only meaningful when len(X) == len(Y); see [Validate].
type Set struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of x values.
func (s Set) Len() int { return len(s.X) }

// At returns the i-th point.
func (s Set) At(i int) Point { return Point{X: s.X[i], Y: s.Y[i]} }

// Domain is the nominal coordinate space [0, Width) × [0, Height).
type Domain struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// DefaultDomain is the 1280×960 camera frame the tool was built around.
var DefaultDomain = Domain{Width: 1280, Height: 960}

// DefaultSentinels are appended by [Stabilize]. Order matters: callers and
// tests rely on the exact sequence.
var DefaultSentinels = []Point{
	{X: 1500, Y: 1000},
	{X: -100, Y: -100},
	{X: 1500, Y: -100},
	{X: -100, Y: 1000},
}

// Generate returns n points with integer coordinates drawn independently per
// axis: x uniform in [0, d.Width) and y uniform in [0, d.Height).
// A negative n or an empty domain yields an empty set.
func Generate(n int, d Domain, rng *rand.Rand) Set {
	if n < 0 || d.Width <= 0 || d.Height <= 0 {
		n = 0
	}
	s := Set{X: make([]float64, n), Y: make([]float64, n)}
	for i := 0; i < n; i++ {
		s.X[i] = float64(rng.IntN(d.Width))
		s.Y[i] = float64(rng.IntN(d.Height))
	}
	return s
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Stabilize returns a copy of s with sentinels appended in order.
// It does not check that s is valid; the input slices are never modified.
func Stabilize(s Set, sentinels []Point) Set {
	out := Set{
		X: make([]float64, len(s.X), len(s.X)+len(sentinels)),
		Y: make([]float64, len(s.Y), len(s.Y)+len(sentinels)),
	}
	copy(out.X, s.X)
	copy(out.Y, s.Y)
	for _, p := range sentinels {
		out.X = append(out.X, p.X)
		out.Y = append(out.Y, p.Y)
	}
	return out
}

// Validate returns an ErrCodeLengthMismatch error when x and y differ in
// length. Two empty slices are valid.
func Validate(x, y []float64) error {
	if len(x) != len(y) {
		return herrors.New(herrors.ErrCodeLengthMismatch,
			"x and y contain a different number of values: %d != %d", len(x), len(y))
	}
	return nil
}
