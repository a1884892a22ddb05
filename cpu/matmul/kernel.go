package matmul

import (
	"time"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/budget"
)

// Kernel is a native int8 matrix multiply used in place of the recursive
// algorithm on hosts whose capability record reports both matrix
// extensions. It accumulates a·b into r for n×n row-major buffers and must
// stop once deadline passes, returning the units done so far as an
// interrupted count. A zero deadline means no deadline.
type Kernel interface {
	MultiplyInt8(a, b []int8, r []int32, n int, deadline time.Time) budget.Count
}

// BlockedKernel is the in-tree Kernel: a cache-blocked i-k-j multiply that
// checks the deadline once per tile.
type BlockedKernel struct {
	// Tile is the block edge in elements. Zero means 64.
	Tile int
}

func (k BlockedKernel) MultiplyInt8(a, b []int8, r []int32, n int, deadline time.Time) budget.Count {
	tile := k.Tile
	if tile <= 0 {
		tile = 64
	}

	var units uint64
	for i0 := 0; i0 < n; i0 += tile {
		iMax := min(i0+tile, n)

		for j0 := 0; j0 < n; j0 += tile {
			jMax := min(j0+tile, n)

			for k0 := 0; k0 < n; k0 += tile {
				kMax := min(k0+tile, n)

				if !deadline.IsZero() && !time.Now().Before(deadline) {
					return budget.Interrupted(units)
				}

				for i := i0; i < iMax; i++ {
					row := r[i*n+j0 : i*n+jMax]
					for kk := k0; kk < kMax; kk++ {
						aik := int32(a[i*n+kk])
						col := b[kk*n+j0 : kk*n+jMax]
						for j := range row {
							row[j] += aik * int32(col[j])
						}
					}
				}

				units += uint64((iMax - i0) * (jMax - j0) * (kMax - k0))
			}
		}
	}

	return budget.Completed(units)
}

// strategy is the single-threaded integer multiply chosen once per run.
type strategy interface {
	name() string
	multiply(a, b []int8, r []int32, n int, timeout *budget.Timeout) budget.Count
}

type portable struct{}

func (portable) name() string { return "portable" }

func (portable) multiply(a, b []int8, r []int32, n int, timeout *budget.Timeout) budget.Count {
	return Multiply(a, b, r, n, timeout)
}

type accelerated struct {
	kernel Kernel
}

func (accelerated) name() string { return "accelerated" }

func (s accelerated) multiply(a, b []int8, r []int32, n int, timeout *budget.Timeout) budget.Count {
	return s.kernel.MultiplyInt8(a, b, r, n, timeout.Deadline())
}

// selectStrategy uses the kernel only when caps reports both extensions.
// A nil kernel on such a host falls back to BlockedKernel.
func selectStrategy(caps capability.Record, kernel Kernel) strategy {
	if !caps.Accelerated() {
		return portable{}
	}
	if kernel == nil {
		kernel = BlockedKernel{}
	}
	return accelerated{kernel: kernel}
}
