// Package points provides the coordinate sets that heatmaps are built from.
//
// A [Set] holds two parallel sequences of x and y values paired by index.
// Sets come from [Generate] (uniform random integer coordinates over a
// [Domain]) or from a CSV/JSON file via [ReadFile].
//
// # Stabilization
//
// Kernel density estimation needs a non-singular sample covariance. A set
// whose points are all identical, or that holds a single point, has none.
// [Stabilize] appends fixed sentinel points outside the nominal domain
// ([DefaultSentinels]) so the covariance is always well conditioned. The
// sentinels carry no meaning and bias the estimate slightly; results near
// the domain border must be read with that in mind.
//
// # Validation
//
// [Validate] checks that x and y have the same length. Renderers call it
// before doing any work.
//
//	s := points.Generate(1000, points.DefaultDomain, rng)
//	s = points.Stabilize(s, points.DefaultSentinels)
//	if err := points.Validate(s.X, s.Y); err != nil {
//	    return err
//	}
package points
