package pool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/devbench/internal/cpu"
)

// worker drains taskChan, writing each result into its own slot of results.
// Slots are disjoint per task, so no locking is needed.
func (wp *WorkerPool[T, R]) worker(
	ctx context.Context,
	workerID int,
	taskChan <-chan indexedTask[T],
	results []R,
	processFn ProcessFunc[T, R],
) error {
	if wp.pinWorkers {
		defer cpu.SetupWorkerAffinity(workerID)()
	}

	for {
		select {
		case t, ok := <-taskChan:
			if !ok {
				return nil
			}

			result, err := processWithRecovery(ctx, t.task, processFn)
			if err != nil {
				return fmt.Errorf("task %d: %w", t.index, err)
			}
			results[t.index] = result

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
