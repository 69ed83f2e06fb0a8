// Package symnmf clusters point sets by symmetric non-negative matrix
// factorization (symNMF) of their normalized similarity graph.
//
// The pipeline is
//
//	X → A (Gaussian similarity) → D (degrees) → W = D^-1/2 A D^-1/2 → H ≥ 0, H·Hᵗ ≈ W
//
// and every prefix of it is an entry point of its own: Similarity, Degree,
// Normalize and the full Fit. Cluster labels are the row-wise argmax of H.
//
// Basic usage:
//
//	config := symnmf.DefaultConfig()
//	config.K = 3
//	model := symnmf.New(config)
//	if err := model.Fit(X); err != nil {
//		return err
//	}
//	labels := model.Labels()
package symnmf

import (
	"io"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/graph"
	"github.com/nozzle/symnmf/initial"
	"github.com/nozzle/symnmf/internal/dataio"
	"github.com/nozzle/symnmf/internal/rand"
	"github.com/nozzle/symnmf/optimize"
)

// NewPoints copies rows into an n×d point matrix. Ragged or empty input is
// rejected with ErrShape.
func NewPoints(rows [][]float64) (*mat.Dense, error) {
	return graph.NewPoints(rows)
}

// Similarity returns the Gaussian similarity matrix of the rows of X.
func Similarity(X mat.Matrix) (*mat.SymDense, error) {
	return graph.Similarity(X, 0)
}

// Degree returns the diagonal degree matrix of the similarity graph of X.
func Degree(X mat.Matrix) (*mat.DiagDense, error) {
	A, err := graph.Similarity(X, 0)
	if err != nil {
		return nil, err
	}
	return graph.Degree(A), nil
}

// Normalize returns the normalized similarity matrix W of X.
func Normalize(X mat.Matrix) (*mat.SymDense, error) {
	A, err := graph.Similarity(X, 0)
	if err != nil {
		return nil, err
	}
	return graph.Normalize(A, graph.Degree(A))
}

// InitialFactor returns the seeded random starting point H0 (n×k) for W.
// The same W, k and seed always give the same H0.
func InitialFactor(W mat.Matrix, k int, seed uint32) (*mat.Dense, error) {
	return initial.Random(W, k, rand.NewMT19937(seed))
}

// Factorize refines H0 against W with the solver settings of config.
// config.K, when set, must match the column count of H0.
func Factorize(H0, W mat.Matrix, config Config) (optimize.Result, error) {
	return optimize.Factorize(H0, W, config.OptimizeConfig())
}

// Labels assigns every row of H to the column holding its largest value.
// Ties go to the lowest column.
func Labels(H mat.Matrix) []int {
	n, k := H.Dims()
	labels := make([]int, n)
	row := make([]float64, k)
	for i := range labels {
		mat.Row(row, i, H)
		labels[i] = floats.MaxIdx(row)
	}
	return labels
}

// WriteMatrix prints m as comma-separated rows with four fractional digits.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	return dataio.Write(w, m)
}

// Model runs the full pipeline and keeps every intermediate matrix.
type Model struct {
	Config Config

	// Learned state after fitting
	similarity *mat.SymDense
	degree     *mat.DiagDense
	normalized *mat.SymDense
	initial    *mat.Dense
	result     optimize.Result
}

// New creates a new model with the given configuration.
func New(config Config) *Model {
	return &Model{Config: config}
}

// Fit runs similarity, degree, normalization, initialization and
// factorization on the rows of X.
func (m *Model) Fit(X mat.Matrix) error {
	logger := m.Config.logger()
	workers := m.Config.NumWorkers
	n, d := X.Dims()
	logger.Debug("symnmf fit", zap.Int("n", n), zap.Int("d", d), zap.Int("k", m.Config.K))

	A, err := graph.Similarity(X, workers)
	if err != nil {
		return err
	}
	D := graph.DegreeWorkers(A, workers)
	W, err := graph.NormalizeWorkers(A, D, workers)
	if err != nil {
		return err
	}

	H0, err := initial.Random(W, m.Config.K, rand.NewMT19937(m.Config.Seed))
	if err != nil {
		return err
	}

	res, err := optimize.Factorize(H0, W, m.Config.OptimizeConfig())
	if err != nil {
		return err
	}

	m.similarity, m.degree, m.normalized, m.initial, m.result = A, D, W, H0, res

	if !res.Converged {
		logger.Info("factorization stopped at iteration budget",
			zap.Int("iterations", res.Iterations),
			zap.Float64("delta", res.Delta))
	}
	return nil
}

// FitTransform fits the model to X and returns the factor matrix H.
func (m *Model) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.result.H, nil
}

// Similarity returns A from the last Fit.
func (m *Model) Similarity() *mat.SymDense { return m.similarity }

// Degree returns D from the last Fit.
func (m *Model) Degree() *mat.DiagDense { return m.degree }

// Normalized returns W from the last Fit.
func (m *Model) Normalized() *mat.SymDense { return m.normalized }

// Initial returns H0 from the last Fit.
func (m *Model) Initial() *mat.Dense { return m.initial }

// Result returns the factorization result of the last Fit.
func (m *Model) Result() optimize.Result { return m.result }

// Labels returns the cluster label of every point from the last Fit.
func (m *Model) Labels() []int {
	if m.result.H == nil {
		return nil
	}
	return Labels(m.result.H)
}
