package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/symerr"
)

func TestClusterSeparatedGroups(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		10, 10,
		0.5, 0,
		10, 10.5,
		0, 0.5,
		10.5, 10,
	})

	res, err := Cluster(X, 2, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, res.Converged)

	// First-k seeding puts point 0 in cluster 0 and point 1 in cluster 1.
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, res.Labels)
	assert.InDelta(t, 0.5/3, res.Centroids.At(0, 0), 1e-12)
	assert.InDelta(t, 10+0.5/3, res.Centroids.At(1, 1), 1e-12)
}

func TestClusterEmptyCluster(t *testing.T) {
	// The first two points coincide, so the second centroid never wins a point.
	X := mat.NewDense(3, 1, []float64{0, 0, 10})

	res, err := Cluster(X, 2, DefaultConfig())
	require.NoError(t, err)
	// Round one leaves cluster 1 empty at 0 while cluster 0 moves to 10/3;
	// round two hands the zeros to cluster 1.
	assert.Equal(t, []int{1, 1, 0}, res.Labels)
	assert.Equal(t, 0.0, res.Centroids.At(1, 0))
	assert.Equal(t, 10.0, res.Centroids.At(0, 0))

	config := DefaultConfig()
	config.EmptyCluster = Fail
	_, err = Cluster(X, 2, config)
	require.ErrorIs(t, err, symerr.ErrDegenerateInput)
}

func TestClusterRank(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	for _, k := range []int{0, 4} {
		_, err := Cluster(X, k, DefaultConfig())
		require.ErrorIsf(t, err, symerr.ErrShape, "k=%d", k)
	}

	res, err := Cluster(X, 3, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Labels)
}

func TestClusterBadConfig(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	config := DefaultConfig()
	config.MaxIter = 0
	_, err := Cluster(X, 2, config)
	require.ErrorIs(t, err, symerr.ErrPrecondition)
}

func TestClusterBudget(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 5, 6})
	config := DefaultConfig()
	config.MaxIter = 1

	res, err := Cluster(X, 2, config)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Converged)
}

func TestPredict(t *testing.T) {
	centroids := mat.NewDense(2, 2, []float64{0, 0, 5, 5})
	X := mat.NewDense(3, 2, []float64{1, 1, 4, 4, 2.5, 2.5})
	// The midpoint is a tie and goes to the lower index.
	assert.Equal(t, []int{0, 1, 0}, Predict(X, centroids))
}

func TestEmptyClusterPolicyText(t *testing.T) {
	var p EmptyClusterPolicy
	require.NoError(t, p.UnmarshalText([]byte("fail")))
	assert.Equal(t, Fail, p)
	require.NoError(t, p.UnmarshalText([]byte("KEEP")))
	assert.Equal(t, KeepPrevious, p)
	require.Error(t, p.UnmarshalText([]byte("drop")))

	text, err := Fail.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fail", string(text))
}
