// Package optimize implements the multiplicative-update solver for symmetric
// non-negative matrix factorization: given a symmetric non-negative W (n×n) it
// refines a non-negative H (n×k) so that H·Hᵗ approximates W.
//
// The update rule is the damped multiplicative update
//
//	H ← H ∘ (1 − β + β · (W·H) ⊘ (H·Hᵗ·H))
//
// which keeps H non-negative because every factor is non-negative. β = 1 is
// the plain ratio update; β = 1/2 is the default.
//
// Ref: Da Kuang, Chris Ding, Haesun Park (2012) 'Symmetric Nonnegative Matrix
// Factorization for Graph Clustering.' SDM 2012.
package optimize

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/parallel"
	"github.com/nozzle/symnmf/internal/symerr"
)

// Config configures a Factorize call.
type Config struct {
	// K is the expected rank. When positive, H0 must have exactly K columns.
	// Default: 0 (take the rank from H0)
	K int

	// MaxIter is the iteration budget. Reaching it is not an error.
	// Default: 300
	MaxIter int

	// Epsilon is the convergence threshold on the squared Frobenius distance
	// between successive iterates.
	// Default: 1e-4
	Epsilon float64

	// Beta is the damping of the multiplicative update, in (0, 1].
	// Default: 0.5
	Beta float64

	// DenominatorGuard is the smallest denominator the update divides by.
	// Zero disables the clamp; a zero denominator is then reported as
	// ErrNumericalInstability.
	// Default: 1e-6
	DenominatorGuard float64

	// NumWorkers for the row-parallel update (0 = auto).
	NumWorkers int

	// Logger receives per-iteration debug output. Nil disables logging.
	Logger *zap.Logger

	// ProgressCallback is called after each iteration with the iteration
	// count and the squared Frobenius distance of that step.
	ProgressCallback func(iter int, delta float64)
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		MaxIter:          300,
		Epsilon:          1e-4,
		Beta:             0.5,
		DenominatorGuard: 1e-6,
	}
}

// Result is the terminal state of a factorization.
type Result struct {
	// H is the final factor matrix. It never aliases the caller's H0.
	H *mat.Dense
	// Iterations is the number of updates applied.
	Iterations int
	// Delta is the squared Frobenius distance of the last update.
	Delta float64
	// Converged reports whether Delta <= Epsilon was reached within MaxIter.
	Converged bool
}

// Factorize refines H0 against W until successive iterates are within
// config.Epsilon of each other or config.MaxIter updates have been applied.
//
// Preconditions are checked before the first iteration: W must be square with
// no negative entries, and H0 must be non-negative with one row per row of W.
func Factorize(H0, W mat.Matrix, config Config) (Result, error) {
	n, k, err := validate(H0, W, config)
	if err != nil {
		return Result{}, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("factorize start",
		zap.Int("n", n),
		zap.Int("k", k),
		zap.Float64("beta", config.Beta),
		zap.Int("maxIter", config.MaxIter),
		zap.Float64("epsilon", config.Epsilon))

	s := &solver{
		W:       W,
		cur:     mat.DenseCopyOf(H0),
		next:    mat.NewDense(n, k, nil),
		n:       n,
		k:       k,
		config:  config,
		workers: parallel.Resolve(config.NumWorkers),
	}

	var res Result
	for res.Iterations < config.MaxIter {
		delta, err := s.step()
		if err != nil {
			logger.Debug("factorize failed", zap.Int("iter", res.Iterations+1), zap.Error(err))
			return Result{}, err
		}
		res.Iterations++
		res.Delta = delta

		logger.Debug("iteration", zap.Int("iter", res.Iterations), zap.Float64("delta", delta))
		if config.ProgressCallback != nil {
			config.ProgressCallback(res.Iterations, delta)
		}

		if delta <= config.Epsilon {
			res.Converged = true
			break
		}
	}
	res.H = s.cur

	logger.Debug("factorize done",
		zap.Int("iterations", res.Iterations),
		zap.Float64("delta", res.Delta),
		zap.Bool("converged", res.Converged))

	return res, nil
}

// solver holds the iterate, its successor buffer and the product scratch
// space of one Factorize call.
type solver struct {
	W         mat.Matrix
	cur, next *mat.Dense

	num, gram, den mat.Dense

	n, k    int
	config  Config
	workers int
}

// step applies one update, swaps the buffers, and returns the squared
// Frobenius distance between the old and new iterate.
func (s *solver) step() (float64, error) {
	H := s.cur

	// H is read-only until the buffers are swapped, so the two products
	// can run side by side.
	parallel.Do(
		func() { s.num.Mul(s.W, H) },
		func() {
			s.gram.Mul(H.T(), H)
			s.den.Mul(H, &s.gram)
		},
	)

	beta := s.config.Beta
	guard := s.config.DenominatorGuard

	rowDelta := make([]float64, s.n)
	rowErr := make([]error, s.n)
	parallel.For(0, s.n, s.workers, func(i int) {
		h := H.RawRowView(i)
		num := s.num.RawRowView(i)
		den := s.den.RawRowView(i)
		out := s.next.RawRowView(i)

		var sum float64
		for j := range out {
			d := den[j]
			if guard == 0 && d == 0 {
				rowErr[i] = symerr.Errorf(symerr.ErrNumericalInstability, "factorize",
					"denominator at (%d,%d) is zero with the guard disabled", i, j)
				return
			}
			// Zero entries are fixed points of the update.
			if h[j] == 0 {
				out[j] = 0
				continue
			}
			d = math.Max(d, guard)

			v := h[j] * (1 - beta + beta*num[j]/d)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				rowErr[i] = symerr.Errorf(symerr.ErrNumericalInstability, "factorize",
					"update at (%d,%d) is %g", i, j, v)
				return
			}

			out[j] = v
			diff := v - h[j]
			sum += diff * diff
		}
		rowDelta[i] = sum
	})

	var delta float64
	for i := range rowDelta {
		if rowErr[i] != nil {
			return 0, rowErr[i]
		}
		delta += rowDelta[i]
	}

	s.cur, s.next = s.next, s.cur
	return delta, nil
}

// validate checks the configuration and the inputs and returns n and k.
func validate(H0, W mat.Matrix, config Config) (n, k int, err error) {
	const op = "factorize"

	switch {
	case config.MaxIter < 1:
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "MaxIter=%d", config.MaxIter)
	case !(config.Epsilon >= 0):
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "Epsilon=%g", config.Epsilon)
	case !(config.Beta > 0 && config.Beta <= 1):
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "Beta=%g outside (0, 1]", config.Beta)
	case !(config.DenominatorGuard >= 0):
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "DenominatorGuard=%g", config.DenominatorGuard)
	}

	n, c := W.Dims()
	if n != c || n == 0 {
		return 0, 0, symerr.Errorf(symerr.ErrShape, op, "W is %d×%d", n, c)
	}

	hr, k := H0.Dims()
	if hr != n {
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "H has %d rows, W has %d", hr, n)
	}
	if k == 0 || (config.K > 0 && k != config.K) {
		return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "H has %d columns, want rank %d", k, config.K)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if w := W.At(i, j); !(w >= 0) || math.IsInf(w, 1) {
				return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "W[%d][%d] = %g", i, j, w)
			}
		}
		for j := 0; j < k; j++ {
			if h := H0.At(i, j); !(h >= 0) || math.IsInf(h, 1) {
				return 0, 0, symerr.Errorf(symerr.ErrPrecondition, op, "H[%d][%d] = %g", i, j, h)
			}
		}
	}

	return n, k, nil
}

// ReconstructionError returns the squared Frobenius norm of W − H·Hᵗ.
func ReconstructionError(W, H mat.Matrix) float64 {
	var approx mat.Dense
	approx.Mul(H, H.T())

	n, _ := W.Dims()
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := W.At(i, j) - approx.At(i, j)
			sum += d * d
		}
	}
	return sum
}
