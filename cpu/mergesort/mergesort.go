// Package mergesort benchmarks merge sort over random fixed-length
// alphanumeric strings and verifies the order of every completed sort.
package mergesort

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/budget"
	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
	"github.com/utkarsh5026/devbench/report"
)

// Config controls one sort benchmark run. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	Rand *rand.Rand

	Duration time.Duration

	// ItemLen is the length of every generated string.
	ItemLen int

	// DataLen is the number of strings sorted per iteration.
	DataLen int

	Logger *slog.Logger
}

// DefaultConfig returns a 10 second run sorting 100000 strings of 25
// characters.
func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Second,
		ItemLen:  25,
		DataLen:  100_000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.ItemLen <= 0 {
		c.ItemLen = def.ItemLen
	}
	if c.DataLen <= 0 {
		c.DataLen = def.DataLen
	}
	return c
}

// UnsortedError reports a completed sort that left an inversion. Data is a
// copy of the whole array.
type UnsortedError struct {
	Index int
	Data  []string
}

func (e *UnsortedError) Error() string {
	return fmt.Sprintf("mergesort: data unsorted at index %d: %q > %q", e.Index, e.Data[e.Index], e.Data[e.Index+1])
}

// Bench runs the sort benchmark on the calling goroutine.
func Bench(_ capability.Record, cfg Config) (report.Throughput, error) {
	c := newBenchContext(cfg, "sort")

	return c.run(func() budget.Count {
		return Sort(c.data, c.scratch, c.timeout)
	})
}

// BenchMultithread runs the sort benchmark with halves forked across
// caps.Workers() workers.
func BenchMultithread(caps capability.Record, cfg Config) (report.Throughput, error) {
	c := newBenchContext(cfg, "sort (multithread)")
	fj := pool.NewForkJoin(pool.WithWorkerCount(caps.Workers()))

	return c.run(func() budget.Count {
		return SortParallel(fj, c.data, c.scratch, c.timeout)
	})
}

type benchContext struct {
	name    string
	rng     *rand.Rand
	log     *progress.Logger
	itemLen int

	data    []string
	scratch []string

	timeout *budget.Timeout
}

func newBenchContext(cfg Config, name string) *benchContext {
	cfg = cfg.withDefaults()
	return &benchContext{
		name:    name,
		rng:     rng.OrDefault(cfg.Rand),
		log:     progress.New(cfg.Logger, name),
		itemLen: cfg.ItemLen,
		data:    make([]string, cfg.DataLen),
		scratch: make([]string, cfg.DataLen),
		timeout: budget.NewTimeout(cfg.Duration),
	}
}

// reset regenerates every string. It reports false when the budget ran out
// partway through.
func (c *benchContext) reset() bool {
	for i := range c.data {
		if c.timeout.Reached() {
			return false
		}
		c.data[i] = rng.Alphanumeric(c.rng, c.itemLen)
	}
	return true
}

func (c *benchContext) run(sort func() budget.Count) (report.Throughput, error) {
	b := report.NewThroughput(c.name, report.UnitOps)

	iter := 0
	last := budget.Completed(0)
	for ; !c.timeout.Reached(); iter++ {
		if !c.reset() {
			break
		}

		start := time.Now()
		ops := sort()
		b.Add(time.Since(start), ops)
		last = ops

		if ops.Ok() {
			if i := firstInversion(c.data); i >= 0 {
				return report.Throughput{}, &UnsortedError{Index: i, Data: slices.Clone(c.data)}
			}
		}

		c.log.Iteration(iter, b.Units())
	}

	t := b.Build()
	c.log.Done(iter, budget.Count{Units: t.Units, Interrupted: last.Interrupted}, t.Duration)
	return t, nil
}
