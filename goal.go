package symnmf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/graph"
	"github.com/nozzle/symnmf/internal/symerr"
)

// Goal selects how much of the pipeline Run executes.
type Goal string

const (
	// GoalSym stops after the similarity matrix A.
	GoalSym Goal = "sym"
	// GoalDDG stops after the degree matrix D.
	GoalDDG Goal = "ddg"
	// GoalNorm stops after the normalized similarity matrix W.
	GoalNorm Goal = "norm"
	// GoalSymNMF runs the full factorization and returns H.
	GoalSymNMF Goal = "symnmf"
)

// ParseGoal validates a pipeline selector.
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(s); g {
	case GoalSym, GoalDDG, GoalNorm, GoalSymNMF:
		return g, nil
	}
	return "", symerr.Errorf(symerr.ErrUnknownGoal, "goal", "%q", s)
}

// Run executes the pipeline up to goal and returns its output matrix.
// The sym, ddg and norm goals only use config.NumWorkers.
func Run(goal Goal, X mat.Matrix, config Config) (mat.Matrix, error) {
	workers := config.NumWorkers
	switch goal {
	case GoalSym:
		return graph.Similarity(X, workers)
	case GoalDDG:
		A, err := graph.Similarity(X, workers)
		if err != nil {
			return nil, err
		}
		return graph.DegreeWorkers(A, workers), nil
	case GoalNorm:
		A, err := graph.Similarity(X, workers)
		if err != nil {
			return nil, err
		}
		return graph.NormalizeWorkers(A, graph.DegreeWorkers(A, workers), workers)
	case GoalSymNMF:
		return New(config).FitTransform(X)
	}
	return nil, symerr.Errorf(symerr.ErrUnknownGoal, "run", "%q", string(goal))
}
