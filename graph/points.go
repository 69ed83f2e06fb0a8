// Package graph builds the similarity graph of a point set and its
// symmetric normalization.
//
// The three stages are independent entry points:
//
//	A, _ := graph.Similarity(X, 0)
//	D := graph.Degree(A)
//	W, err := graph.Normalize(A, D)
//
// Each stage reads only the complete output of the previous one, so the row
// loops inside a stage run in parallel without further synchronization.
package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/symerr"
)

// NewPoints copies rows into an n×d matrix, one point per row.
// Every row must have the same non-zero length.
func NewPoints(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, symerr.Errorf(symerr.ErrShape, "points", "no points")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, symerr.Errorf(symerr.ErrShape, "points", "point 0 has no coordinates")
	}

	data := make([]float64, 0, n*d)
	for i, row := range rows {
		if len(row) != d {
			return nil, symerr.Errorf(symerr.ErrShape, "points",
				"point %d has %d coordinates, want %d", i, len(row), d)
		}
		data = append(data, row...)
	}
	return mat.NewDense(n, d, data), nil
}

// Rows copies m into a freshly allocated slice of rows.
func Rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
