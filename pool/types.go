package pool

import "context"

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// indexedTask carries a task's position so results land back in task order.
type indexedTask[T any] struct {
	index int
	task  T
}
