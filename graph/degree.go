package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/parallel"
)

// Degree returns the diagonal degree matrix of A, D[i][i] = sum_j A[i][j].
//
// A zero degree marks an isolated point. It is returned as is; Normalize
// reports it.
func Degree(A mat.Matrix) *mat.DiagDense {
	return DegreeWorkers(A, 0)
}

// DegreeWorkers is Degree with an explicit worker count.
func DegreeWorkers(A mat.Matrix, workers int) *mat.DiagDense {
	n, _ := A.Dims()
	degrees := make([]float64, n)

	parallel.For(0, n, parallel.Resolve(workers), func(i int) {
		var sum float64
		for j := 0; j < n; j++ {
			sum += A.At(i, j)
		}
		degrees[i] = sum
	})

	return mat.NewDiagDense(n, degrees)
}
