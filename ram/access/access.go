// Package access benchmarks three memory access patterns over one buffer:
// sequential, random permutation, and concurrent over disjoint chunks. Every
// byte written is read back and checked.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/internal/rng"
	"github.com/utkarsh5026/devbench/pool"
	"github.com/utkarsh5026/devbench/report"
)

// Config controls one RAM access run. Each phase has its own iteration
// count and buffer length; zero fields take the defaults of DefaultConfig.
type Config struct {
	// Rand shuffles the index permutations of the random phase.
	Rand *rand.Rand

	SeqIters   int
	SeqDataLen int

	RandIters   int
	RandDataLen int

	ConcurrIters   int
	ConcurrDataLen int

	// PinWorkers pins each concurrent phase worker to its own core.
	PinWorkers bool

	Logger *slog.Logger
}

// DefaultConfig returns 100 iterations over 64 KiB for every phase.
func DefaultConfig() Config {
	const (
		iters   = 100
		dataLen = 64 * 1024
	)
	return Config{
		SeqIters:       iters,
		SeqDataLen:     dataLen,
		RandIters:      iters,
		RandDataLen:    dataLen,
		ConcurrIters:   iters,
		ConcurrDataLen: dataLen,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	for _, f := range []struct{ v, d *int }{
		{&c.SeqIters, &def.SeqIters},
		{&c.SeqDataLen, &def.SeqDataLen},
		{&c.RandIters, &def.RandIters},
		{&c.RandDataLen, &def.RandDataLen},
		{&c.ConcurrIters, &def.ConcurrIters},
		{&c.ConcurrDataLen, &def.ConcurrDataLen},
	} {
		if *f.v <= 0 {
			*f.v = *f.d
		}
	}
	return c
}

// InvalidValueError reports a byte that did not read back as written.
type InvalidValueError struct {
	Index    int
	Expected byte
	Actual   byte
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("ram access: invalid value at index %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// Report holds the mean per-iteration latency of each phase.
type Report struct {
	Sequential report.Latency
	Random     report.Latency
	Concurrent report.Latency
}

func (r Report) String() string {
	return strings.Join([]string{r.Sequential.String(), r.Random.String(), r.Concurrent.String()}, "\n")
}

// Bench runs the three phases in order. The concurrent phase splits its
// buffer across caps.Workers() workers.
func Bench(caps capability.Record, cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	log := progress.New(cfg.Logger, "ram access").Logger()
	r := rng.OrDefault(cfg.Rand)

	data := make([]byte, max(cfg.SeqDataLen, cfg.RandDataLen, cfg.ConcurrDataLen))

	seq := report.NewLatency("sequential access", cfg.SeqIters)
	for range cfg.SeqIters {
		buf := resetData(data, cfg.SeqDataLen)

		start := time.Now()
		if err := sequential(buf); err != nil {
			return Report{}, err
		}
		seq.Add(time.Since(start))
	}
	log.Debug("ram access: phase done", slog.String("phase", "sequential"), slog.Int("iters", cfg.SeqIters))

	rnd := report.NewLatency("random access", cfg.RandIters)
	for range cfg.RandIters {
		buf := resetData(data, cfg.RandDataLen)
		writeOrder := rng.Perm(r, cfg.RandDataLen)
		readOrder := rng.Perm(r, cfg.RandDataLen)

		start := time.Now()
		if err := random(buf, writeOrder, readOrder); err != nil {
			return Report{}, err
		}
		rnd.Add(time.Since(start))
	}
	log.Debug("ram access: phase done", slog.String("phase", "random"), slog.Int("iters", cfg.RandIters))

	workers := caps.Workers()
	opts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(workers),
		pool.WithTaskBuffer(workers),
	}
	if cfg.PinWorkers {
		opts = append(opts, pool.WithAffinity())
	}
	wp := pool.NewWorkerPool[[]byte, struct{}](opts...)

	conc := report.NewLatency("concurrent access", cfg.ConcurrIters)
	for range cfg.ConcurrIters {
		buf := resetData(data, cfg.ConcurrDataLen)
		parts := chunks(buf, workers)

		start := time.Now()
		if err := concurrent(wp, parts); err != nil {
			return Report{}, err
		}
		conc.Add(time.Since(start))
	}
	log.Debug("ram access: phase done", slog.String("phase", "concurrent"), slog.Int("iters", cfg.ConcurrIters))

	return Report{
		Sequential: seq.Build(),
		Random:     rnd.Build(),
		Concurrent: conc.Build(),
	}, nil
}

// resetData zeroes and returns the first n bytes of data.
func resetData(data []byte, n int) []byte {
	buf := data[:n]
	clear(buf)
	return buf
}

// chunks splits buf into min(n, len(buf)) contiguous, non-overlapping
// parts of len/n bytes. The remainder goes one byte each to the first parts.
func chunks(buf []byte, n int) [][]byte {
	n = min(n, len(buf))
	if n <= 0 {
		return nil
	}
	size, rem := len(buf)/n, len(buf)%n

	parts := make([][]byte, 0, n)
	start := 0
	for i := range n {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, buf[start:end])
		start = end
	}
	return parts
}

// expected is the fill rule every phase writes and verifies: the byte at
// index i holds i mod 256.
func expected(i int) byte {
	return byte(i % 256)
}

func sequential(data []byte) error {
	for i := range data {
		data[i] = expected(i)
	}
	return verify(data)
}

func verify(data []byte) error {
	for i, v := range data {
		if want := expected(i); v != want {
			return &InvalidValueError{Index: i, Expected: want, Actual: v}
		}
	}
	return nil
}

func random(data []byte, writeOrder, readOrder []int) error {
	for _, i := range writeOrder {
		data[i] = expected(i)
	}
	for _, i := range readOrder {
		if v, want := data[i], expected(i); v != want {
			return &InvalidValueError{Index: i, Expected: want, Actual: v}
		}
	}
	return nil
}

// concurrent runs the sequential fill and check on every part in parallel.
// Indices are local to each part. The first mismatch cancels the rest.
func concurrent(wp *pool.WorkerPool[[]byte, struct{}], parts [][]byte) error {
	_, err := wp.Process(context.Background(), parts, func(ctx context.Context, part []byte) (struct{}, error) {
		return struct{}{}, sequential(part)
	})
	return err
}
