package mergesort

import (
	"cmp"
	"fmt"

	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/pool"
)

// parallelThreshold is the span length at or below which SortParallel stops
// forking and recurses sequentially.
var parallelThreshold = 1024

// Sort merge-sorts data using scratch, which must be at least as long, as
// merge space. The count is one unit per single-element leaf plus one per
// element placed by every merge.
func Sort[T cmp.Ordered](data, scratch []T, timeout *budget.Timeout) budget.Count {
	checkScratch(len(data), len(scratch))
	if len(data) == 0 {
		return budget.Completed(0)
	}
	return sortSpan(data, scratch[:len(data)], timeout)
}

// SortParallel is Sort with the two halves of every span longer than
// parallelThreshold sorted as fork-join tasks on fj. Each task owns one half
// of both data and scratch. An interrupted result carries the units of both
// halves.
func SortParallel[T cmp.Ordered](fj *pool.ForkJoin, data, scratch []T, timeout *budget.Timeout) budget.Count {
	checkScratch(len(data), len(scratch))
	if len(data) == 0 {
		return budget.Completed(0)
	}
	return sortSpanParallel(fj, data, scratch[:len(data)], timeout)
}

func checkScratch(data, scratch int) {
	if scratch < data {
		panic(fmt.Sprintf("mergesort: scratch of %d elements is shorter than data of %d", scratch, data))
	}
}

func sortSpan[T cmp.Ordered](data, scratch []T, timeout *budget.Timeout) budget.Count {
	if c, stop := timeout.Check(0); stop {
		return c
	}
	if len(data) == 1 {
		return budget.Completed(1)
	}

	mid := len(data) / 2

	c := sortSpan(data[:mid], scratch[:mid], timeout)
	if c.Interrupted {
		return c
	}
	c = c.Merge(sortSpan(data[mid:], scratch[mid:], timeout))
	if c.Interrupted {
		return c
	}

	return c.Merge(mergeHalves(data, scratch, mid, timeout))
}

func sortSpanParallel[T cmp.Ordered](fj *pool.ForkJoin, data, scratch []T, timeout *budget.Timeout) budget.Count {
	if c, stop := timeout.Check(0); stop {
		return c
	}
	if len(data) <= parallelThreshold {
		return sortSpan(data, scratch, timeout)
	}

	mid := len(data) / 2

	var left, right budget.Count
	fj.Join(
		func() { left = sortSpanParallel(fj, data[:mid], scratch[:mid], timeout) },
		func() { right = sortSpanParallel(fj, data[mid:], scratch[mid:], timeout) },
	)

	c := left.Merge(right)
	if c.Interrupted {
		return c
	}

	return c.Merge(mergeHalves(data, scratch, mid, timeout))
}

// mergeHalves copies the sorted halves data[:mid] and data[mid:] into
// scratch and merges them back into data.
func mergeHalves[T cmp.Ordered](data, scratch []T, mid int, timeout *budget.Timeout) budget.Count {
	if c, stop := timeout.Check(0); stop {
		return c
	}
	copy(scratch, data)

	return merge(data, scratch[:mid], scratch[mid:], timeout)
}

// merge is a stable two-pointer merge of left and right into dst. Ties take
// the left element. The gate is polled before every placement.
func merge[T cmp.Ordered](dst, left, right []T, timeout *budget.Timeout) budget.Count {
	var d, l, r int

	for l < len(left) && r < len(right) {
		if c, stop := timeout.Check(uint64(d)); stop {
			return c
		}

		if left[l] <= right[r] {
			dst[d] = left[l]
			l++
		} else {
			dst[d] = right[r]
			r++
		}
		d++
	}

	for ; l < len(left); l++ {
		if c, stop := timeout.Check(uint64(d)); stop {
			return c
		}
		dst[d] = left[l]
		d++
	}

	for ; r < len(right); r++ {
		if c, stop := timeout.Check(uint64(d)); stop {
			return c
		}
		dst[d] = right[r]
		d++
	}

	return budget.Completed(uint64(d))
}

// firstInversion returns the first index i with data[i] > data[i+1], or -1.
func firstInversion[T cmp.Ordered](data []T) int {
	for i := 1; i < len(data); i++ {
		if data[i-1] > data[i] {
			return i - 1
		}
	}
	return -1
}
