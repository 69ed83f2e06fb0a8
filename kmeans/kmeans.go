// Package kmeans implements the Lloyd's-algorithm baseline that symNMF
// clusterings are compared against.
//
// Centroids are seeded with the first k points, every point is assigned to its
// nearest centroid by Euclidean distance, and centroids move to the mean of
// their points until the largest centroid shift is at most Epsilon or MaxIter
// rounds have run.
package kmeans

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/symerr"
)

// EmptyClusterPolicy decides what happens when a cluster loses all its points.
type EmptyClusterPolicy int

const (
	// KeepPrevious leaves the centroid of an empty cluster where it was.
	KeepPrevious EmptyClusterPolicy = iota
	// Fail stops clustering with ErrDegenerateInput.
	Fail
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case KeepPrevious:
		return "keep"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("EmptyClusterPolicy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p EmptyClusterPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting "keep" or "fail".
func (p *EmptyClusterPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "keep", "keep_previous":
		*p = KeepPrevious
	case "fail":
		*p = Fail
	default:
		return fmt.Errorf("kmeans: unknown empty cluster policy %q", text)
	}
	return nil
}

// Config configures Cluster.
type Config struct {
	// MaxIter is the maximum number of assignment/update rounds.
	// Default: 300
	MaxIter int `toml:"max_iter"`

	// Epsilon is the convergence threshold on the largest Euclidean
	// distance any centroid moved in one round.
	// Default: 1e-4
	Epsilon float64 `toml:"epsilon"`

	// EmptyCluster selects the empty-cluster behaviour.
	// Default: KeepPrevious
	EmptyCluster EmptyClusterPolicy `toml:"empty_cluster"`

	// Logger receives per-round debug output. Nil disables logging.
	Logger *zap.Logger `toml:"-"`
}

// DefaultConfig returns the default k-means configuration.
func DefaultConfig() Config {
	return Config{
		MaxIter:      300,
		Epsilon:      1e-4,
		EmptyCluster: KeepPrevious,
	}
}

// Result holds the outcome of Cluster.
type Result struct {
	// Centroids is k×d, one centroid per row.
	Centroids *mat.Dense
	// Labels assigns every point to its nearest final centroid.
	Labels []int
	// Iterations is the number of rounds run.
	Iterations int
	// Converged reports whether the shift threshold was reached.
	Converged bool
}

// Cluster partitions the rows of X into k clusters.
func Cluster(X mat.Matrix, k int, config Config) (Result, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return Result{}, symerr.Errorf(symerr.ErrShape, "kmeans", "%d×%d point set", n, d)
	}
	if k < 1 || k > n {
		return Result{}, symerr.Errorf(symerr.ErrShape, "kmeans", "k=%d outside [1, %d]", k, n)
	}
	if config.MaxIter < 1 || !(config.Epsilon >= 0) {
		return Result{}, symerr.Errorf(symerr.ErrPrecondition, "kmeans",
			"MaxIter=%d Epsilon=%g", config.MaxIter, config.Epsilon)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	points := mat.DenseCopyOf(X)
	centroids := mat.NewDense(k, d, nil)
	for c := 0; c < k; c++ {
		centroids.SetRow(c, points.RawRowView(c))
	}

	labels := make([]int, n)
	sums := mat.NewDense(k, d, nil)
	counts := make([]int, k)

	var res Result
	for res.Iterations < config.MaxIter {
		assign(points, centroids, labels)

		sums.Zero()
		clear(counts)
		for i, c := range labels {
			floats.Add(sums.RawRowView(c), points.RawRowView(i))
			counts[c]++
		}

		var maxShift float64
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				if config.EmptyCluster == Fail {
					return Result{}, symerr.Errorf(symerr.ErrDegenerateInput, "kmeans",
						"cluster %d is empty after round %d", c, res.Iterations+1)
				}
				continue
			}
			mean := sums.RawRowView(c)
			floats.Scale(1/float64(counts[c]), mean)
			maxShift = math.Max(maxShift, floats.Distance(centroids.RawRowView(c), mean, 2))
			centroids.SetRow(c, mean)
		}
		res.Iterations++

		logger.Debug("kmeans iteration", zap.Int("iter", res.Iterations), zap.Float64("maxShift", maxShift))
		if maxShift <= config.Epsilon {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	res.Labels = Predict(points, centroids)
	return res, nil
}

// Predict returns the index of the nearest centroid for every row of X.
// Ties go to the lower centroid index.
func Predict(X, centroids mat.Matrix) []int {
	n, _ := X.Dims()
	labels := make([]int, n)
	assign(mat.DenseCopyOf(X), mat.DenseCopyOf(centroids), labels)
	return labels
}

func assign(points, centroids *mat.Dense, labels []int) {
	n, _ := points.Dims()
	k, _ := centroids.Dims()
	for i := 0; i < n; i++ {
		p := points.RawRowView(i)
		best, bestDist := 0, math.Inf(1)
		for c := 0; c < k; c++ {
			if dist := floats.Distance(p, centroids.RawRowView(c), 2); dist < bestDist {
				best, bestDist = c, dist
			}
		}
		labels[i] = best
	}
}
