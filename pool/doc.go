// Package pool provides the two concurrency shapes the benchmarks run on:
// a flat worker pool for independent partitions and a fork-join helper for
// recursive divide-and-conquer algorithms.
//
// Both are sized to a worker count (normally the capability record's core
// count) and both are structured: every call blocks until all the work it
// started has finished, so no task ever outlives the call that spawned it.
//
// # Worker Pool
//
// WorkerPool[T, R] processes a slice of tasks on a fixed number of workers
// and returns results in task order. The first error cancels the remaining
// work, which gives fail-fast reductions without extra synchronization.
//
//	wp := pool.NewWorkerPool[span, budget.Count](pool.WithWorkerCount(8))
//	counts, err := wp.Process(ctx, spans, func(ctx context.Context, s span) (budget.Count, error) {
//	    return work(s), nil
//	})
//
// Tasks are expected to touch disjoint parts of any shared buffer. The pool
// adds no locking of its own around task data.
//
// # Fork-Join
//
// ForkJoin runs child closures in parallel while a slot is free and inline
// otherwise, so recursion of any depth is bounded by the worker count and
// can never deadlock waiting for a busy worker.
//
//	fj := pool.NewForkJoin(pool.WithWorkerCount(8))
//	fj.Join(
//	    func() { left = sort(data[:mid]) },
//	    func() { right = sort(data[mid:]) },
//	)
//
// # Configuration Options
//
//   - WithWorkerCount(n): number of concurrent workers (default: GOMAXPROCS)
//   - WithTaskBuffer(size): task channel buffer size (default: worker count)
//   - WithAffinity(): pin each worker goroutine to its own core
package pool
