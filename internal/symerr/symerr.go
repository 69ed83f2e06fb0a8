// Package symerr defines the error kinds shared by every stage of the
// factorization pipeline.
//
// Stages return one of these sentinels wrapped with the operation and the
// offending values, e.g.
//
//	fmt.Errorf("normalize: point %d has degree %g: %w", i, d, symerr.ErrDegenerateInput)
//
// Callers match the kind with errors.Is. The root package re-exports them.
package symerr

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned for inconsistent dimensions: ragged or empty point
	// sets, non-square matrices, or a rank k outside [1, n].
	ErrShape = errors.New("symnmf: invalid shape")

	// ErrDegenerateInput is returned when the input has no usable structure,
	// such as an isolated point with zero degree.
	ErrDegenerateInput = errors.New("symnmf: degenerate input")

	// ErrNumericalInstability is returned when an update denominator collapses
	// to zero with the guard disabled, or an update produces NaN or Inf.
	ErrNumericalInstability = errors.New("symnmf: numerical instability")

	// ErrPrecondition is returned when a caller contract is violated, such as
	// negative entries in W or an H whose shape does not match W.
	ErrPrecondition = errors.New("symnmf: precondition violated")

	// ErrUnknownGoal is returned for a pipeline selector other than
	// sym, ddg, norm or symnmf.
	ErrUnknownGoal = errors.New("symnmf: unknown goal")
)

// Errorf wraps kind with an operation name and formatted detail.
func Errorf(kind error, op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), kind)
}
