package render

import (
	"math"
	"sort"
	"strconv"
)

// niceStep rounds span/n up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(span float64, n int) float64 {
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// Levels returns about n contour bands covering [lo, hi] on nice
// boundaries. The first boundary is <= lo and the last is >= hi, so every
// value falls into a band. A flat field yields a single band.
func Levels(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if !(hi > lo) {
		return []float64{lo, lo + 1}
	}
	step := niceStep(hi-lo, n)
	start := math.Floor(lo/step) * step
	levels := []float64{start}
	for i := 1; levels[len(levels)-1] < hi; i++ {
		levels = append(levels, start+float64(i)*step)
	}
	return levels
}

// band returns the index of the band [levels[i], levels[i+1]] holding v.
func band(levels []float64, v float64) int {
	i := sort.SearchFloat64s(levels, v) - 1
	if i < 0 {
		return 0
	}
	if i > len(levels)-2 {
		return len(levels) - 2
	}
	return i
}

// ticks returns nice tick positions inside [lo, hi].
func ticks(lo, hi float64, n int) []float64 {
	if !(hi > lo) {
		return []float64{lo}
	}
	step := niceStep(hi-lo, n)
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
