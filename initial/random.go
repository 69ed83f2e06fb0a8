// Package initial provides the starting factor matrix for the factorization.
package initial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/symerr"
)

// Source draws uniform values in [low, high).
// *rand.MT19937 from the internal rand package satisfies it.
type Source interface {
	Uniform(low, high float64) float64
}

// Mean returns the average of all n*n entries of W.
func Mean(W mat.Matrix) float64 {
	r, c := W.Dims()
	if r == 0 || c == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += W.At(i, j)
		}
	}
	return sum / float64(r*c)
}

// Upper returns the exclusive upper bound 2*sqrt(m/k) of the initial entries,
// where m is the mean entry of W. Scaling by the magnitude of W keeps the
// first iterations well conditioned.
func Upper(W mat.Matrix, k int) float64 {
	return 2 * math.Sqrt(Mean(W)/float64(k))
}

// Random returns an n×k matrix with entries drawn independently and uniformly
// from [0, Upper(W, k)). Draws are taken row by row, then column by column, so
// a generator seeded the same way always yields the same matrix.
//
// W must be square and 1 <= k <= n.
func Random(W mat.Matrix, k int, src Source) (*mat.Dense, error) {
	n, c := W.Dims()
	if n != c || n == 0 {
		return nil, symerr.Errorf(symerr.ErrShape, "initial factor", "W is %d×%d", n, c)
	}
	if k < 1 || k > n {
		return nil, symerr.Errorf(symerr.ErrShape, "initial factor", "k=%d outside [1, %d]", k, n)
	}

	high := Upper(W, k)
	if math.IsNaN(high) {
		return nil, symerr.Errorf(symerr.ErrPrecondition, "initial factor", "W has negative or NaN mean")
	}

	H := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			H.Set(i, j, src.Uniform(0, high))
		}
	}
	return H, nil
}
