// Package distance provides the point distances used to build the similarity
// graph and to score clusterings.
package distance

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Func is a distance function between two vectors of equal length.
type Func func(x, y []float64) float64

// Registry maps metric names to their implementations.
var Registry = map[string]Func{
	// Minkowski family
	"euclidean":   Euclidean,
	"l2":          Euclidean,
	"sqeuclidean": SquaredEuclidean,
	"manhattan":   Manhattan,
	"l1":          Manhattan,
	"cityblock":   Manhattan,
	"chebyshev":   Chebyshev,
	"linf":        Chebyshev,

	// Angular metrics
	"cosine": Cosine,
}

// Get returns the distance function for the given metric name.
func Get(name string) (Func, bool) {
	f, ok := Registry[name]
	return f, ok
}

// Names returns the registered metric names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Euclidean computes the standard Euclidean (L2) distance.
func Euclidean(x, y []float64) float64 {
	return math.Sqrt(SquaredEuclidean(x, y))
}

// SquaredEuclidean computes sum((x_i - y_i)^2) without the square root.
// This is the distance the Gaussian similarity kernel is defined on.
func SquaredEuclidean(x, y []float64) float64 {
	var sum float64
	for i := range x {
		d := x[i] - y[i]
		sum += d * d
	}
	return sum
}

// Manhattan computes the Manhattan (L1/taxicab) distance.
func Manhattan(x, y []float64) float64 {
	return floats.Distance(x, y, 1)
}

// Chebyshev computes the Chebyshev (L-infinity) distance.
func Chebyshev(x, y []float64) float64 {
	return floats.Distance(x, y, math.Inf(1))
}

// Cosine computes the cosine distance 1 - (x . y) / (||x|| * ||y||).
// A zero vector is at distance 1 from everything.
func Cosine(x, y []float64) float64 {
	normX := floats.Norm(x, 2)
	normY := floats.Norm(y, 2)
	if normX == 0 || normY == 0 {
		return 1.0
	}
	similarity := floats.Dot(x, y) / (normX * normY)
	// Clamp to [-1, 1] to handle floating point errors
	similarity = math.Max(-1, math.Min(1, similarity))
	return 1.0 - similarity
}
