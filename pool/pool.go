package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool processes batches of tasks on a fixed number of workers.
// A WorkerPool holds no goroutines between calls; each Process call starts
// its workers and waits for all of them before returning.
type WorkerPool[T any, R any] struct {
	workerCount int
	taskBuffer  int
	pinWorkers  bool
}

// NewWorkerPool creates a new worker pool with the given options.
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	cfg := createConfig(opts...)

	return &WorkerPool[T, R]{
		workerCount: cfg.workerCount,
		taskBuffer:  cfg.taskBuffer,
		pinWorkers:  cfg.pinWorkers,
	}
}

// Workers returns the configured worker count.
func (wp *WorkerPool[T, R]) Workers() int {
	return wp.workerCount
}

// Process runs processFn over every task and returns the results in task
// order. The first failing task cancels the context handed to the others
// and its error is returned; the results of tasks that did not finish are
// left at their zero value.
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	taskChan := make(chan indexedTask[T], wp.taskBuffer)
	results := make([]R, len(tasks))

	numWorkers := min(wp.workerCount, len(tasks))
	for id := range numWorkers {
		g.Go(func() error {
			return wp.worker(ctx, id, taskChan, results, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for i, t := range tasks {
			select {
			case taskChan <- indexedTask[T]{index: i, task: t}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	err := g.Wait()
	return results, err
}
