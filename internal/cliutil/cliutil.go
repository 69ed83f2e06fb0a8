// Package cliutil holds argument handling shared by the commands.
package cliutil

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
)

// Failure is printed on stdout by every command that exits with an error.
const Failure = "An Error Has Occurred"

// ParseRank parses a cluster count. Whole numbers written as floats, like
// "3.0", are accepted.
func ParseRank(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("k: %w", err)
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, fmt.Errorf("k=%s is not a positive whole number", s)
	}
	return int(f), nil
}

// Logger returns a development logger on stderr when verbose, otherwise a
// no-op logger.
func Logger(verbose bool) *zap.Logger {
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return l
		}
	}
	return zap.NewNop()
}
