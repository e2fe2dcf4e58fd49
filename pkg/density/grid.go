package density

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Extent is the rectangle a grid covers, in data coordinates.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns MaxX - MinX.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Grid is a dense Cols × Rows matrix stored row-major.
type Grid struct {
	Cols   int
	Rows   int
	Values []float64
	Extent Extent
}

// NewGrid allocates a zeroed grid.
func NewGrid(cols, rows int, e Extent) *Grid {
	return &Grid{Cols: cols, Rows: rows, Values: make([]float64, cols*rows), Extent: e}
}

// At returns the value at column c, row r.
func (g *Grid) At(c, r int) float64 { return g.Values[r*g.Cols+c] }

// Set stores v at column c, row r.
func (g *Grid) Set(c, r int, v float64) { g.Values[r*g.Cols+c] = v }

// Range returns the smallest and largest value. An empty grid returns 0, 0.
func (g *Grid) Range() (lo, hi float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Sum returns the sum of all values.
func (g *Grid) Sum() float64 {
	var s float64
	for _, v := range g.Values {
		s += v
	}
	return s
}

// Finite reports whether every value is neither NaN nor infinite.
func (g *Grid) Finite() bool {
	for _, v := range g.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// gridMagic prefixes the binary encoding.
var gridMagic = [4]byte{'H', 'M', 'G', '1'}

type gridHeader struct {
	Magic  [4]byte
	Cols   uint32
	Rows   uint32
	Extent Extent
}

// MarshalBinary encodes the grid as a little-endian header followed by the
// raw float64 values.
func (g *Grid) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(4 + 8 + 32 + 8*len(g.Values))
	h := gridHeader{Magic: gridMagic, Cols: uint32(g.Cols), Rows: uint32(g.Rows), Extent: g.Extent}
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, g.Values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary.
func (g *Grid) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var h gridHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("grid header: %w", err)
	}
	if h.Magic != gridMagic {
		return fmt.Errorf("grid header: bad magic %q", h.Magic[:])
	}
	n := int(h.Cols) * int(h.Rows)
	if r.Len() != 8*n {
		return fmt.Errorf("grid body: have %d bytes, want %d", r.Len(), 8*n)
	}
	values := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return fmt.Errorf("grid body: %w", err)
	}
	g.Cols, g.Rows, g.Extent, g.Values = int(h.Cols), int(h.Rows), h.Extent, values
	return nil
}
