package symnmf

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/nozzle/symnmf/internal/parallel"
)

// Job is one independent factorization of a batch.
type Job struct {
	Name   string
	Points mat.Matrix
	Config Config
}

// JobResult is the outcome of one Job. Err is set when that job failed;
// other jobs are unaffected.
type JobResult struct {
	Name       string
	H          *mat.Dense
	Labels     []int
	Iterations int
	Converged  bool
	Err        error
}

// FitBatch fits every job on a pool of workers goroutines (0 = one per CPU)
// and returns the results in job order. Each job builds its own matrices and
// generator, so jobs share no mutable state. Jobs not yet started when ctx is
// cancelled report ctx.Err().
func FitBatch(ctx context.Context, jobs []Job, workers int, logger *zap.Logger) ([]JobResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]JobResult, len(jobs))
	var wg sync.WaitGroup

	pool, err := ants.NewPool(parallel.Resolve(workers), ants.WithPanicHandler(func(v interface{}) {
		logger.Error("batch job panicked", zap.Any("panic", v))
	}))
	if err != nil {
		return nil, fmt.Errorf("symnmf: batch pool: %w", err)
	}
	defer pool.Release()

	for i := range jobs {
		results[i].Name = jobs[i].Name
		results[i].Err = fmt.Errorf("symnmf: batch job %q did not finish", jobs[i].Name)

		i := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = runJob(ctx, jobs[i], logger)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("symnmf: submit batch job %q: %w", jobs[i].Name, err)
		}
	}
	wg.Wait()

	return results, nil
}

func runJob(ctx context.Context, job Job, logger *zap.Logger) JobResult {
	res := JobResult{Name: job.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	config := job.Config
	if config.Logger == nil {
		config.Logger = logger.With(zap.String("job", job.Name))
	}

	model := New(config)
	if err := model.Fit(job.Points); err != nil {
		config.Logger.Debug("batch job failed", zap.Error(err))
		res.Err = err
		return res
	}

	out := model.Result()
	res.H = out.H
	res.Labels = model.Labels()
	res.Iterations = out.Iterations
	res.Converged = out.Converged
	return res
}
