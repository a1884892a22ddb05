// Package bench is the composition root of the benchmarks. A Bench owns the
// capability record of the host and runs each benchmark family, alone or in
// groups, on the single-threaded or the multithreaded path.
package bench

import (
	"log/slog"
	"time"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/cpu/crypto"
	"github.com/utkarsh5026/devbench/cpu/matmul"
	"github.com/utkarsh5026/devbench/cpu/mergesort"
	"github.com/utkarsh5026/devbench/internal/progress"
	ramaccess "github.com/utkarsh5026/devbench/ram/access"
	"github.com/utkarsh5026/devbench/ram/alloc"
	"github.com/utkarsh5026/devbench/report"
	storageaccess "github.com/utkarsh5026/devbench/storage/access"
)

// Option configures a Bench.
type Option func(*Bench)

// WithLogger sets the logger for family start and finish records. It is
// also handed to every family whose Config leaves Logger nil.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bench) {
		if l != nil {
			b.log = l
		}
	}
}

// WithKernel sets the native matrix kernel used on accelerated hosts when
// the math Config does not name one.
func WithKernel(k matmul.Kernel) Option {
	return func(b *Bench) {
		b.kernel = k
	}
}

// WithOnFamily registers a hook called after every family finishes, with
// the family's error or nil.
func WithOnFamily(fn func(f Family, err error)) Option {
	return func(b *Bench) {
		b.onFamily = fn
	}
}

// Bench runs benchmarks against one immutable capability record. A Bench
// holds no mutable state and may run families from several goroutines.
type Bench struct {
	caps     capability.Record
	log      *slog.Logger
	kernel   matmul.Kernel
	onFamily func(Family, error)
}

// New returns a Bench for caps.
func New(caps capability.Record, opts ...Option) *Bench {
	b := &Bench{
		caps: caps,
		log:  progress.OrDiscard(nil),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capability returns the record the Bench was built with.
func (b *Bench) Capability() capability.Record {
	return b.caps
}

func (b *Bench) Crypto(cfg crypto.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyCrypto, false, func() (report.Throughput, error) {
		return crypto.Bench(b.caps, cfg)
	})
}

func (b *Bench) CryptoMultithread(cfg crypto.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyCrypto, true, func() (report.Throughput, error) {
		return crypto.BenchMultithread(b.caps, cfg)
	})
}

func (b *Bench) Math(cfg matmul.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	if cfg.Kernel == nil {
		cfg.Kernel = b.kernel
	}
	return run(b, FamilyMath, false, func() (report.Throughput, error) {
		return matmul.Bench(b.caps, cfg)
	})
}

func (b *Bench) MathMultithread(cfg matmul.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyMath, true, func() (report.Throughput, error) {
		return matmul.BenchMultithread(b.caps, cfg)
	})
}

func (b *Bench) Sort(cfg mergesort.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilySort, false, func() (report.Throughput, error) {
		return mergesort.Bench(b.caps, cfg)
	})
}

func (b *Bench) SortMultithread(cfg mergesort.Config) (report.Throughput, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilySort, true, func() (report.Throughput, error) {
		return mergesort.BenchMultithread(b.caps, cfg)
	})
}

func (b *Bench) RAMAlloc(cfg alloc.Config) (alloc.Report, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyRAMAlloc, false, func() (alloc.Report, error) {
		return alloc.Bench(cfg)
	})
}

// RAMAccess runs all three access phases. Its concurrent phase always uses
// the capability record's core count.
func (b *Bench) RAMAccess(cfg ramaccess.Config) (ramaccess.Report, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyRAMAccess, false, func() (ramaccess.Report, error) {
		return ramaccess.Bench(b.caps, cfg)
	})
}

func (b *Bench) StorageAccess(cfg storageaccess.Config) (storageaccess.Report, error) {
	cfg.Logger = b.logger(cfg.Logger)
	return run(b, FamilyStorageAccess, false, func() (storageaccess.Report, error) {
		return storageaccess.Bench(b.caps, cfg)
	})
}

func (b *Bench) logger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return b.log
}

// run times fn, logs it, tags its error with the family and reports it to
// the hook.
func run[R any](b *Bench, f Family, multithread bool, fn func() (R, error)) (R, error) {
	attrs := []any{slog.String("family", f.String()), slog.Bool("multithread", multithread)}
	b.log.Info("bench: family started", attrs...)

	start := time.Now()
	r, err := fn()
	elapsed := time.Since(start)

	if err != nil {
		err = &FamilyError{Family: f, Multithread: multithread, Err: err}
		b.log.Error("bench: family failed", append(attrs, slog.Duration("elapsed", elapsed), slog.Any("error", err))...)
	} else {
		b.log.Info("bench: family finished", append(attrs, slog.Duration("elapsed", elapsed))...)
	}

	if b.onFamily != nil {
		b.onFamily(f, err)
	}
	return r, err
}
