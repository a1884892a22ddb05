package pool

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// ForkJoin runs recursive child tasks in parallel, bounded by a worker count.
//
// The calling goroutine counts as one worker, so at most workers-1 extra
// goroutines exist at any moment. A child that finds no free slot runs
// inline on the caller, which keeps nested joins deadlock-free at any depth.
// A ForkJoin is safe for concurrent use and may be shared by every level of
// one recursion.
type ForkJoin struct {
	workers int
	slots   *semaphore.Weighted
}

// NewForkJoin creates a fork-join helper. Only WithWorkerCount is used.
func NewForkJoin(opts ...WorkerPoolOption) *ForkJoin {
	cfg := createConfig(opts...)

	return &ForkJoin{
		workers: cfg.workerCount,
		slots:   semaphore.NewWeighted(int64(cfg.workerCount - 1)),
	}
}

// Workers returns the parallelism bound, including the caller.
func (fj *ForkJoin) Workers() int {
	return fj.workers
}

// Join runs left and right, possibly in parallel, and returns when both have
// returned.
func (fj *ForkJoin) Join(left, right func()) {
	fj.Invoke(left, right)
}

// Invoke runs every fn, possibly in parallel, and returns when all of them
// have returned. fns[0] always runs on the calling goroutine. A panic in a
// child is re-raised on the caller after the remaining children finish.
func (fj *ForkJoin) Invoke(fns ...func()) {
	if len(fns) == 0 {
		return
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		childPanic any
	)
	var spill [4]func()
	inline := spill[:0]

	for _, fn := range fns[1:] {
		if !fj.slots.TryAcquire(1) {
			inline = append(inline, fn)
			continue
		}
		wg.Go(func() {
			defer fj.slots.Release(1)
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if childPanic == nil {
						childPanic = r
					}
					mu.Unlock()
				}
			}()
			fn()
		})
	}

	fns[0]()
	for _, fn := range inline {
		fn()
	}

	wg.Wait()
	if childPanic != nil {
		panic(childPanic)
	}
}
