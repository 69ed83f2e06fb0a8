package graph

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/parallel"
	"github.com/nozzle/symnmf/internal/symerr"
)

// Normalize computes W = D^(-1/2) A D^(-1/2), that is
//
//	W[i][j] = A[i][j] / sqrt(D[i][i] * D[j][j])
//
// Every degree must be strictly positive. An isolated point makes the
// normalization undefined and is reported with ErrDegenerateInput instead of
// letting NaN or Inf reach the factorization.
func Normalize(A mat.Symmetric, D *mat.DiagDense) (*mat.SymDense, error) {
	return NormalizeWorkers(A, D, 0)
}

// NormalizeWorkers is Normalize with an explicit worker count.
func NormalizeWorkers(A mat.Symmetric, D *mat.DiagDense, workers int) (*mat.SymDense, error) {
	n, c := A.Dims()
	if n != c {
		return nil, symerr.Errorf(symerr.ErrShape, "normalize", "similarity matrix is %d×%d", n, c)
	}
	if dn, _ := D.Dims(); dn != n {
		return nil, symerr.Errorf(symerr.ErrShape, "normalize",
			"degree matrix has %d entries for %d points", dn, n)
	}

	degrees := make([]float64, n)
	for i := range degrees {
		deg := D.At(i, i)
		if !(deg > 0) {
			return nil, symerr.Errorf(symerr.ErrDegenerateInput, "normalize",
				"point %d has degree %g", i, deg)
		}
		degrees[i] = deg
	}

	W := mat.NewSymDense(n, nil)
	parallel.For(0, n, parallel.Resolve(workers), func(i int) {
		for j := i; j < n; j++ {
			W.SetSym(i, j, A.At(i, j)/math.Sqrt(degrees[i]*degrees[j]))
		}
	})

	return W, nil
}
