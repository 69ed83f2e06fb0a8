// Package metrics scores clusterings.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/distance"
	"github.com/nozzle/symnmf/internal/parallel"
	"github.com/nozzle/symnmf/internal/symerr"
)

// Silhouette returns the mean silhouette coefficient of the labelling with
// Euclidean distance. See SilhouetteMetric.
func Silhouette(X mat.Matrix, labels []int) (float64, error) {
	return SilhouetteMetric(X, labels, distance.Euclidean, 0)
}

// SilhouetteMetric returns the mean silhouette coefficient over all points:
//
//	s(i) = (b(i) - a(i)) / max(a(i), b(i))
//
// where a(i) is the mean distance from i to the other members of its cluster
// and b(i) the smallest mean distance from i to the members of another
// cluster. Points alone in their cluster score 0. Label values need not be
// contiguous, but there must be between 2 and n-1 distinct labels.
func SilhouetteMetric(X mat.Matrix, labels []int, dist distance.Func, workers int) (float64, error) {
	n, _ := X.Dims()
	if len(labels) != n {
		return 0, symerr.Errorf(symerr.ErrShape, "silhouette", "%d labels for %d points", len(labels), n)
	}

	index := make(map[int]int)
	cluster := make([]int, n)
	for i, l := range labels {
		c, ok := index[l]
		if !ok {
			c = len(index)
			index[l] = c
		}
		cluster[i] = c
	}
	k := len(index)
	if k < 2 || k > n-1 {
		return 0, symerr.Errorf(symerr.ErrShape, "silhouette",
			"%d distinct labels for %d points, need 2 to n-1", k, n)
	}

	sizes := make([]int, k)
	for _, c := range cluster {
		sizes[c]++
	}

	points := mat.DenseCopyOf(X)
	scores := parallel.Map(0, n, parallel.Resolve(workers), func(i int) float64 {
		own := cluster[i]
		if sizes[own] == 1 {
			return 0
		}

		totals := make([]float64, k)
		p := points.RawRowView(i)
		for j := 0; j < n; j++ {
			if j != i {
				totals[cluster[j]] += dist(p, points.RawRowView(j))
			}
		}

		a := totals[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c != own {
				b = math.Min(b, totals[c]/float64(sizes[c]))
			}
		}

		m := math.Max(a, b)
		if m == 0 {
			return 0
		}
		return (b - a) / m
	})

	return floats.Sum(scores) / float64(n), nil
}
