package density

import (
	"math"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
)

// Bins is the number of histogram cells per axis.
type Bins struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// DomainExtent returns the extent [0, Width] × [0, Height].
func DomainExtent(d points.Domain) Extent {
	return Extent{MaxX: float64(d.Width), MaxY: float64(d.Height)}
}

// DataExtent returns the bounding box of s. An axis with zero width is
// widened by 0.5 on both sides so it still has bins to fall into.
// An empty set yields the unit square.
func DataExtent(s points.Set) Extent {
	if s.Len() == 0 {
		return Extent{MaxX: 1, MaxY: 1}
	}
	e := Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for i := range s.X {
		e.MinX = math.Min(e.MinX, s.X[i])
		e.MaxX = math.Max(e.MaxX, s.X[i])
		e.MinY = math.Min(e.MinY, s.Y[i])
		e.MaxY = math.Max(e.MaxY, s.Y[i])
	}
	if e.MinX == e.MaxX {
		e.MinX, e.MaxX = e.MinX-0.5, e.MaxX+0.5
	}
	if e.MinY == e.MaxY {
		e.MinY, e.MaxY = e.MinY-0.5, e.MaxY+0.5
	}
	return e
}

// Histogram counts the points of s into bins.X × bins.Y equal cells over e.
// Points outside e are dropped; a point on the upper edge of an axis falls
// into the last bin. s must be valid.
func Histogram(s points.Set, bins Bins, e Extent) (*Grid, error) {
	if err := points.Validate(s.X, s.Y); err != nil {
		return nil, err
	}
	if bins.X <= 0 || bins.Y <= 0 {
		return nil, herrors.New(herrors.ErrCodeInvalidInput, "bins must be positive, got %dx%d", bins.X, bins.Y)
	}
	if !(e.Width() > 0) || !(e.Height() > 0) {
		return nil, herrors.New(herrors.ErrCodeInvalidInput, "histogram extent must have positive size")
	}

	g := NewGrid(bins.X, bins.Y, e)
	for i := range s.X {
		c, ok := binIndex(s.X[i], e.MinX, e.MaxX, bins.X)
		if !ok {
			continue
		}
		r, ok := binIndex(s.Y[i], e.MinY, e.MaxY, bins.Y)
		if !ok {
			continue
		}
		g.Values[r*g.Cols+c]++
	}
	return g, nil
}

func binIndex(v, lo, hi float64, n int) (int, bool) {
	if v < lo || v > hi || math.IsNaN(v) {
		return 0, false
	}
	if v == hi {
		return n - 1, true
	}
	i := int((v - lo) / (hi - lo) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i, true
}
