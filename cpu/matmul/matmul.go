// Package matmul benchmarks square matrix multiplication by recursive
// quadrant decomposition.
//
// The single-threaded run multiplies int8 matrices into int32 accumulators,
// or hands the whole product to a native Kernel on hosts that support it.
// The multithreaded run multiplies float32 matrices, so the two runs measure
// integer and floating point throughput respectively.
package matmul

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
	"github.com/utkarsh5026/devbench/report"
)

// ErrEmpty is returned when a completed multiply leaves the first and last
// element of every result row at zero.
var ErrEmpty = errors.New("matmul: result matrix is empty")

// Bench runs the integer benchmark on the calling goroutine.
func Bench(caps capability.Record, cfg Config) (report.Throughput, error) {
	cfg = cfg.withDefaults()
	s := selectStrategy(caps, cfg.Kernel)

	c := newBenchContext[int8, int32](cfg, "math")
	c.log.Logger().Debug("math: strategy selected", slog.String("strategy", s.name()), slog.Int("n", cfg.N))

	return c.run(randInt8, func() budget.Count {
		return s.multiply(c.a, c.b, c.r, c.n, c.timeout)
	})
}

// BenchMultithread runs the floating point benchmark with result quadrants
// forked across caps.Workers() workers.
func BenchMultithread(caps capability.Record, cfg Config) (report.Throughput, error) {
	cfg = cfg.withDefaults()
	fj := pool.NewForkJoin(pool.WithWorkerCount(caps.Workers()))

	c := newBenchContext[float32, float32](cfg, "math (multithread)")

	return c.run(randFloat32, func() budget.Count {
		return MultiplyParallel(fj, c.a, c.b, c.r, c.n, c.timeout)
	})
}

type benchContext[T, R Number] struct {
	name string
	rng  *rand.Rand
	log  *progress.Logger

	n int
	a []T
	b []T
	r []R

	timeout *budget.Timeout
}

func newBenchContext[T, R Number](cfg Config, name string) *benchContext[T, R] {
	size := cfg.N * cfg.N
	return &benchContext[T, R]{
		name:    name,
		rng:     rng.OrDefault(cfg.Rand),
		log:     progress.New(cfg.Logger, name),
		n:       cfg.N,
		a:       make([]T, size),
		b:       make([]T, size),
		r:       make([]R, size),
		timeout: budget.NewTimeout(cfg.Duration),
	}
}

// reset refills both operands and zeroes the result.
func (c *benchContext[T, R]) reset(gen func(*rand.Rand) T) {
	for i := range c.a {
		c.a[i] = gen(c.rng)
	}
	for i := range c.b {
		c.b[i] = gen(c.rng)
	}
	clear(c.r)
}

func (c *benchContext[T, R]) run(gen func(*rand.Rand) T, multiply func() budget.Count) (report.Throughput, error) {
	b := report.NewThroughput(c.name, report.UnitOps)

	iter := 0
	last := budget.Completed(0)
	for ; !c.timeout.Reached(); iter++ {
		c.reset(gen)

		start := time.Now()
		ops := multiply()
		b.Add(time.Since(start), ops)
		last = ops

		if ops.Ok() && degenerate(c.r, c.n) {
			return report.Throughput{}, ErrEmpty
		}

		c.log.Iteration(iter, b.Units())
	}

	t := b.Build()
	c.log.Done(iter, budget.Count{Units: t.Units, Interrupted: last.Interrupted}, t.Duration)
	return t, nil
}

// degenerate reports whether the first and last element of every row of
// the n×n matrix r are zero.
func degenerate[R Number](r []R, n int) bool {
	for i := range n {
		if r[i*n] != 0 || r[(i+1)*n-1] != 0 {
			return false
		}
	}
	return true
}

func randInt8(r *rand.Rand) int8 {
	return int8(r.Uint32())
}

func randFloat32(r *rand.Rand) float32 {
	return r.Float32()
}
