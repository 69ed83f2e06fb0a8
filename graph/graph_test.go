package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/symerr"
)

// generateBlobs returns nClusters well separated groups of points, 10 units
// apart along every axis, with small deterministic jitter.
func generateBlobs(nSamples, nClusters, nFeatures int, seed int64) [][]float64 {
	data := make([][]float64, nSamples)
	perCluster := nSamples / nClusters

	rng := seed
	next := func() float64 {
		rng = (rng*6364136223846793005 + 1442695040888963407) & 0x7FFFFFFF
		return float64(rng) / float64(0x7FFFFFFF)
	}

	for i := range data {
		cluster := min(i/perCluster, nClusters-1)
		data[i] = make([]float64, nFeatures)
		for j := range data[i] {
			data[i][j] = float64(cluster*10) + next() - 0.5
		}
	}
	return data
}

func mustPoints(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	X, err := NewPoints(rows)
	require.NoError(t, err)
	return X
}

func TestNewPointsRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"empty", nil},
		{"no coordinates", [][]float64{{}, {}}},
		{"ragged", [][]float64{{1, 2}, {3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPoints(tt.rows)
			require.ErrorIs(t, err, symerr.ErrShape)
		})
	}
}

func TestNewPointsCopies(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	X := mustPoints(t, rows)
	rows[0][0] = 99
	assert.Equal(t, 1.0, X.At(0, 0))
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, Rows(X))
}

func TestSimilarityScenario(t *testing.T) {
	X := mustPoints(t, [][]float64{{0, 0}, {0, 1}, {10, 10}})

	A, err := Similarity(X, 0)
	require.NoError(t, err)

	assert.InDelta(t, math.Exp(-0.5), A.At(0, 1), 1e-12)
	assert.InDelta(t, 0.6065, A.At(0, 1), 5e-5)
	assert.InDelta(t, 0, A.At(0, 2), 1e-12)
	assert.InDelta(t, 0, A.At(1, 2), 1e-12)
	assert.Greater(t, A.At(0, 2), 0.0, "large distances underflow only far beyond this scale")
}

func TestSimilaritySymmetricZeroDiagonal(t *testing.T) {
	X := mustPoints(t, generateBlobs(40, 3, 4, 7))

	for _, workers := range []int{1, 4} {
		A, err := Similarity(X, workers)
		require.NoError(t, err)

		n, _ := A.Dims()
		for i := 0; i < n; i++ {
			assert.Zero(t, A.At(i, i), "diagonal %d", i)
			for j := 0; j < n; j++ {
				assert.Equal(t, A.At(i, j), A.At(j, i))
				assert.GreaterOrEqual(t, A.At(i, j), 0.0)
				assert.LessOrEqual(t, A.At(i, j), 1.0)
			}
		}
	}
}

func TestSimilarityDuplicatePoint(t *testing.T) {
	X := mustPoints(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {1, 2, 3}})

	A, err := Similarity(X, 0)
	require.NoError(t, err)

	// Duplicates reach the maximum attainable similarity exp(0).
	assert.Equal(t, 1.0, A.At(0, 2))
	assert.Equal(t, 1.0, A.At(2, 0))
	assert.Zero(t, A.At(0, 0))
}

func TestSimilarityEmpty(t *testing.T) {
	_, err := Similarity(&mat.Dense{}, 0)
	require.ErrorIs(t, err, symerr.ErrShape)
}

func TestDegreeRowSums(t *testing.T) {
	X := mustPoints(t, generateBlobs(30, 2, 3, 11))
	A, err := Similarity(X, 0)
	require.NoError(t, err)

	D := Degree(A)
	n, _ := A.Dims()
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += A.At(i, j)
		}
		assert.InDelta(t, sum, D.At(i, i), 1e-12)
		for j := 0; j < n; j++ {
			if i != j {
				assert.Zero(t, D.At(i, j))
			}
		}
	}
}

func TestNormalizeProperties(t *testing.T) {
	X := mustPoints(t, generateBlobs(36, 3, 2, 3))
	A, err := Similarity(X, 0)
	require.NoError(t, err)
	D := Degree(A)

	W, err := NormalizeWorkers(A, D, 3)
	require.NoError(t, err)

	n, _ := W.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w := W.At(i, j)
			assert.Equal(t, w, W.At(j, i))
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
			assert.InDelta(t, A.At(i, j)/math.Sqrt(D.At(i, i)*D.At(j, j)), w, 1e-15)
		}
	}
}

func TestNormalizeIsolatedPoint(t *testing.T) {
	// exp(-10000) underflows to zero, so neither point has any neighbor.
	X := mustPoints(t, [][]float64{{0, 0}, {100, 100}})
	A, err := Similarity(X, 0)
	require.NoError(t, err)

	D := Degree(A)
	assert.Zero(t, D.At(0, 0))

	_, err = Normalize(A, D)
	require.Error(t, err)
	assert.True(t, errors.Is(err, symerr.ErrDegenerateInput))
}

func TestNormalizeShapeMismatch(t *testing.T) {
	A := mat.NewSymDense(3, nil)
	D := mat.NewDiagDense(2, []float64{1, 1})
	_, err := Normalize(A, D)
	require.ErrorIs(t, err, symerr.ErrShape)
}

func BenchmarkSimilarity(b *testing.B) {
	X, _ := NewPoints(generateBlobs(300, 3, 8, 42))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Similarity(X, 0)
	}
}
