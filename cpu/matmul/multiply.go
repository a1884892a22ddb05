package matmul

import (
	"fmt"

	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/pool"
)

// parallelThreshold is the side length at or below which MultiplyParallel
// stops forking and recurses sequentially.
var parallelThreshold = 32

// Multiply accumulates a·b into r for n×n row-major matrices using recursive
// quadrant decomposition down to single cells. n must be a power of two and
// every buffer must hold n*n elements. The count is one unit per cell
// multiply-accumulate, n³ for a full run.
func Multiply[T, R Number](a, b []T, r []R, n int, timeout *budget.Timeout) budget.Count {
	checkDims(len(a), len(b), len(r), n)
	if n == 0 {
		return budget.Completed(0)
	}
	return mul(newView(a, n), newView(b, n), newView(r, n), timeout)
}

// MultiplyParallel is Multiply with the four result quadrants of every level
// above parallelThreshold computed as fork-join tasks on fj. Each task owns
// a disjoint result quadrant.
func MultiplyParallel[T, R Number](fj *pool.ForkJoin, a, b []T, r []R, n int, timeout *budget.Timeout) budget.Count {
	checkDims(len(a), len(b), len(r), n)
	if n == 0 {
		return budget.Completed(0)
	}
	return mulParallel(fj, newView(a, n), newView(b, n), newView(r, n), timeout)
}

func checkDims(la, lb, lr, n int) {
	if n < 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("matmul: side %d is not a power of two", n))
	}
	if want := n * n; la < want || lb < want || lr < want {
		panic(fmt.Sprintf("matmul: buffers of %d, %d, %d elements are too small for %dx%d", la, lb, lr, n, n))
	}
}

func mul[T, R Number](a, b view[T], r view[R], timeout *budget.Timeout) budget.Count {
	if c, stop := timeout.Check(0); stop {
		return c
	}

	if a.n == 1 {
		r.data[r.index(0, 0)] += R(a.data[a.index(0, 0)]) * R(b.data[b.index(0, 0)])
		return budget.Completed(1)
	}

	var units uint64
	for _, q := range split(a, b, r) {
		if c, stop := timeout.Check(units); stop {
			return c
		}

		c := mul(q.a1, q.b1, q.r, timeout)
		units += c.Units
		if c.Interrupted {
			return budget.Interrupted(units)
		}

		c = mul(q.a2, q.b2, q.r, timeout)
		units += c.Units
		if c.Interrupted {
			return budget.Interrupted(units)
		}
	}

	return budget.Completed(units)
}

func mulParallel[T, R Number](fj *pool.ForkJoin, a, b view[T], r view[R], timeout *budget.Timeout) budget.Count {
	if c, stop := timeout.Check(0); stop {
		return c
	}
	if a.n <= parallelThreshold {
		return mul(a, b, r, timeout)
	}

	quads := split(a, b, r)
	var counts [4]budget.Count
	tasks := make([]func(), len(quads))
	for i, q := range quads {
		tasks[i] = func() {
			counts[i] = mulQuadrant(fj, q, timeout)
		}
	}
	fj.Invoke(tasks...)

	return budget.Sum(counts[:]...)
}

// mulQuadrant runs both products of one quadrant in order. The second is
// skipped when the first was interrupted.
func mulQuadrant[T, R Number](fj *pool.ForkJoin, q quadrant[T, R], timeout *budget.Timeout) budget.Count {
	if timeout.Reached() {
		return budget.Interrupted(0)
	}

	c := mulParallel(fj, q.a1, q.b1, q.r, timeout)
	if c.Interrupted {
		return c
	}
	return c.Merge(mulParallel(fj, q.a2, q.b2, q.r, timeout))
}
