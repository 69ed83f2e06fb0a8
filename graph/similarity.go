package graph

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/distance"
	"github.com/nozzle/symnmf/internal/parallel"
	"github.com/nozzle/symnmf/internal/symerr"
)

// Similarity builds the n×n Gaussian similarity matrix of the rows of X:
//
//	A[i][j] = exp(-||x_i - x_j||^2 / 2)  for i != j
//	A[i][i] = 0
//
// Self-similarity is excluded by convention rather than computed as exp(0).
// workers <= 0 uses one worker per CPU.
func Similarity(X mat.Matrix, workers int) (*mat.SymDense, error) {
	n, d := X.Dims()
	if n < 1 || d < 1 {
		return nil, symerr.Errorf(symerr.ErrShape, "similarity", "%d×%d point set", n, d)
	}

	points := Rows(X)
	A := mat.NewSymDense(n, nil)

	// Row i owns the upper-triangle entries (i, j > i), so workers never
	// write the same element.
	parallel.For(0, n, parallel.Resolve(workers), func(i int) {
		for j := i + 1; j < n; j++ {
			A.SetSym(i, j, math.Exp(-distance.SquaredEuclidean(points[i], points[j])/2))
		}
	})

	return A, nil
}
