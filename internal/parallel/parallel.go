// Package parallel provides the row-parallel helpers used by every pipeline
// stage. Each helper returns only after all work has finished, which gives the
// stage-boundary barrier the pipeline relies on.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Resolve maps a configured worker count to an effective one.
// Zero or negative means one worker per available CPU.
func Resolve(n int) int {
	if n <= 0 {
		return NumWorkers()
	}
	return n
}

// For executes fn for indices [start, end) using n workers.
// Indices are split into contiguous chunks, one per worker.
func For(start, end, n int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if n <= 1 || total == 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (total + n - 1) / n

	for w := 0; w < n; w++ {
		chunkStart := start + w*chunkSize
		chunkEnd := min(chunkStart+chunkSize, end)
		if chunkStart >= chunkEnd {
			break
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()
}

// Map applies fn to each index in [start, end) and collects results in order.
func Map[T any](start, end, n int, fn func(i int) T) []T {
	if end <= start {
		return nil
	}
	results := make([]T, end-start)
	For(start, end, n, func(i int) {
		results[i-start] = fn(i)
	})
	return results
}

// Do executes multiple functions in parallel.
func Do(fns ...func()) {
	switch len(fns) {
	case 0:
		return
	case 1:
		fns[0]()
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		go func(f func()) {
			defer wg.Done()
			f()
		}(fn)
	}
	wg.Wait()
}
