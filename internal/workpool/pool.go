package workpool

import (
	"context"
	"runtime"
	"sync"

	"github.com/specialistvlad/irlink/internal/ctxlog"
)

// job is one unit of work handed to a worker.
type job[T any] struct {
	index int
	item  T
}

// Workers returns n if positive, otherwise the number of CPUs.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Map calls fn for every item on at most workers goroutines and returns the
// results in the order of items. Each call writes only its own result slot.
// Once ctx is done the remaining items are skipped and Map returns ctx.Err()
// together with the results gathered so far.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) R) ([]R, error) {
	logger := ctxlog.FromContext(ctx)
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}

	workers = min(Workers(workers), len(items))
	jobs := make(chan job[T], len(items))
	for i, item := range items {
		jobs <- job[T]{index: i, item: item}
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	logger.Debug("Starting worker pool.", "workers", workers, "jobs", len(items))
	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			worker(ctx, workerID, jobs, results, fn)
		}(w)
	}
	wg.Wait()

	return results, ctx.Err()
}

// worker is the processing loop for a single goroutine of the pool.
func worker[T, R any](ctx context.Context, workerID int, jobs <-chan job[T], results []R, fn func(context.Context, T) R) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	done := 0
	for j := range jobs {
		if ctx.Err() != nil {
			continue
		}
		results[j.index] = fn(ctx, j.item)
		done++
	}
	logger.Debug("Worker finished.", "jobs", done)
}
