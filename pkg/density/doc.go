// Package density turns coordinate sets into dense value grids.
//
// Two estimators are provided:
//
//   - [Histogram] counts points per cell over a fixed number of bins.
//   - [KDE] is a Gaussian kernel density estimate with a scalar bandwidth
//     factor, evaluated at every unit position of a domain by [KDE.Evaluate].
//
// Both produce a [Grid]: Cols × Rows values in row-major order. Column index
// grows with x and row index grows with y, so row 0 is the top of an image.
//
// # Bandwidth
//
// The bandwidth factor scales the sample covariance: the kernel covariance
// is cov(points) × factor². A factor of 0.1 gives a much tighter kernel than
// Scott's rule would for typical inputs.
//
// # Degenerate input
//
// [FitKDE] fails with ErrCodeDegenerateData when the kernel covariance is
// not positive definite, for example when every point is identical. Appending
// sentinel points (see points.Stabilize) avoids this.
package density
