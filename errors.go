package symnmf

import "github.com/nozzle/symnmf/internal/symerr"

// Error kinds returned by the pipeline. Match them with errors.Is; the
// wrapped message carries the stage and the offending values.
var (
	// ErrShape: inconsistent dimensions, or k outside [1, n].
	ErrShape = symerr.ErrShape
	// ErrDegenerateInput: a zero-degree point makes normalization undefined.
	ErrDegenerateInput = symerr.ErrDegenerateInput
	// ErrNumericalInstability: a denominator collapsed with the guard disabled.
	ErrNumericalInstability = symerr.ErrNumericalInstability
	// ErrPrecondition: negative entries in W or H, or H and W disagree in shape.
	ErrPrecondition = symerr.ErrPrecondition
	// ErrUnknownGoal: the pipeline selector is not sym, ddg, norm or symnmf.
	ErrUnknownGoal = symerr.ErrUnknownGoal
)
