// Package alloc benchmarks allocating and zero-filling a large buffer.
package alloc

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/utkarsh5026/devbench/internal/progress"
	"github.com/utkarsh5026/devbench/report"
)

// Config controls one allocation run. Zero fields take the defaults of
// DefaultConfig.
type Config struct {
	DataLen int
	Iters   int

	Logger *slog.Logger
}

// DefaultConfig returns 100 allocations of 64 MiB.
func DefaultConfig() Config {
	return Config{
		DataLen: 64 * 1024 * 1024,
		Iters:   100,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DataLen <= 0 {
		c.DataLen = def.DataLen
	}
	if c.Iters <= 0 {
		c.Iters = def.Iters
	}
	return c
}

// Report holds the mean time of one allocate and fill.
type Report struct {
	report.Latency
}

// Bench allocates cfg.DataLen bytes cfg.Iters times.
func Bench(cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	log := progress.New(cfg.Logger, "ram alloc").Logger()

	b := report.NewLatency("alloc", cfg.Iters)
	for range cfg.Iters {
		start := time.Now()
		allocate(cfg.DataLen)
		b.Add(time.Since(start))
	}

	r := Report{Latency: b.Build()}
	log.Debug("ram alloc: done", slog.Int("iters", cfg.Iters), slog.Duration("mean", r.Mean))
	return r, nil
}

// allocate makes and zero-fills an n byte buffer. KeepAlive holds the
// buffer until the fill is done so the allocation cannot be elided.
func allocate(n int) {
	buf := make([]byte, n)
	clear(buf)
	runtime.KeepAlive(buf)
}
