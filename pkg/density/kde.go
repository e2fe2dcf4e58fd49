package density

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
)

// maxCond is the largest kernel covariance condition number accepted by
// FitKDE. Anything above is numerically singular.
const maxCond = 1e12

// cutoff is the squared Mahalanobis distance beyond which a kernel's
// contribution (exp(-cutoff/2) relative to its peak) is skipped.
const cutoff = 80.0

// KDE is a fitted two-dimensional Gaussian kernel density estimate.
// It is immutable after FitKDE and safe for concurrent evaluation.
type KDE struct {
	xs, ys []float64

	// Factor is the bandwidth factor the estimate was fitted with.
	Factor float64
	// Covariance is the kernel covariance, cov(points) × Factor².
	Covariance *mat.SymDense

	// inverse covariance [[ia ib] [ib ic]] and normalization
	ia, ib, ic float64
	norm       float64
}

// FitKDE fits a Gaussian KDE to s with the given bandwidth factor.
//
// It returns an ErrCodeLengthMismatch error for an invalid set,
// ErrCodeInvalidInput for a non-positive factor and ErrCodeDegenerateData
// when fewer than two points are given or the covariance is singular.
func FitKDE(s points.Set, factor float64) (*KDE, error) {
	if err := points.Validate(s.X, s.Y); err != nil {
		return nil, err
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, herrors.New(herrors.ErrCodeInvalidInput, "bandwidth factor must be positive, got %v", factor)
	}
	n := s.Len()
	if n < 2 {
		return nil, herrors.New(herrors.ErrCodeDegenerateData, "kernel density needs at least 2 points, got %d", n)
	}

	data := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		data.Set(i, 0, s.X[i])
		data.Set(i, 1, s.Y[i])
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)
	cov.ScaleSym(factor*factor, &cov)

	var chol mat.Cholesky
	if ok := chol.Factorize(&cov); !ok {
		return nil, herrors.New(herrors.ErrCodeDegenerateData,
			"covariance of %d points is singular; points may be identical or collinear", n)
	}
	if c := chol.Cond(); c > maxCond || math.IsNaN(c) {
		return nil, herrors.New(herrors.ErrCodeDegenerateData,
			"covariance of %d points is ill-conditioned (cond %.3g)", n, c)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeDegenerateData, err, "invert covariance")
	}

	k := &KDE{
		xs:         append([]float64(nil), s.X...),
		ys:         append([]float64(nil), s.Y...),
		Factor:     factor,
		Covariance: &cov,
		ia:         inv.At(0, 0),
		ib:         inv.At(0, 1),
		ic:         inv.At(1, 1),
	}
	k.norm = 1 / (float64(n) * 2 * math.Pi * math.Sqrt(chol.Det()))
	return k, nil
}

// N returns the number of sample points.
func (k *KDE) N() int { return len(k.xs) }

// At evaluates the density at (x, y).
func (k *KDE) At(x, y float64) float64 {
	var sum float64
	for i := range k.xs {
		dx, dy := x-k.xs[i], y-k.ys[i]
		q := k.ia*dx*dx + 2*k.ib*dx*dy + k.ic*dy*dy
		if q < cutoff {
			sum += math.Exp(-0.5 * q)
		}
	}
	return sum * k.norm
}

// Evaluate computes the density at every integer position of d: column c,
// row r holds the density at (c, r). The grid has d.Width columns and
// d.Height rows. Rows are evaluated in parallel; cancellation of ctx stops
// the evaluation and returns ctx.Err().
func (k *KDE) Evaluate(ctx context.Context, d points.Domain) (*Grid, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, herrors.New(herrors.ErrCodeInvalidInput, "domain must be positive, got %dx%d", d.Width, d.Height)
	}
	g := NewGrid(d.Width, d.Height, DomainExtent(d))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < d.Height; r++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			k.evalRow(g.Values[r*g.Cols:(r+1)*g.Cols], float64(r))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

// evalRow fills row with densities at y for x = 0, 1, ..., len(row)-1.
// Per-point terms that depend only on y are hoisted out of the x loop, and
// each point only visits the columns where its kernel is inside the cutoff.
func (k *KDE) evalRow(row []float64, y float64) {
	last := float64(len(row) - 1)
	for i := range k.xs {
		dy := y - k.ys[i]
		cyy := k.ic * dy * dy
		cxy := 2 * k.ib * dy
		// q(dx) = ia·dx² + cxy·dx + cyy < cutoff between the two roots.
		disc := cxy*cxy - 4*k.ia*(cyy-cutoff)
		if disc <= 0 {
			continue
		}
		root := math.Sqrt(disc)
		lo := math.Ceil(k.xs[i] + (-cxy-root)/(2*k.ia))
		hi := math.Floor(k.xs[i] + (-cxy+root)/(2*k.ia))
		lo, hi = math.Max(lo, 0), math.Min(hi, last)
		for c := int(lo); c <= int(hi); c++ {
			dx := float64(c) - k.xs[i]
			row[c] += math.Exp(-0.5 * (k.ia*dx*dx + cxy*dx + cyy))
		}
	}
	for c := range row {
		row[c] *= k.norm
	}
}
