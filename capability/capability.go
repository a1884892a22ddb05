// Package capability describes the host a benchmark runs on: how many cores
// the parallel variants may use and whether the hardware extensions needed by
// the accelerated matrix kernel are present.
//
// A Record is plain data. Detection is a separate, optional step so that the
// benchmarks themselves never probe the hardware.
package capability

import (
	"fmt"
	"os"

	"github.com/utkarsh5026/devbench/internal/cpu"
)

// Record is the immutable capability description shared read-only by every
// benchmark run of a bench.Bench.
type Record struct {
	// Cores sizes the worker pool of every multithreaded benchmark.
	Cores int

	// SVE and I8MM are the two extensions that enable the accelerated
	// matrix kernel. Both must be present.
	SVE  bool
	I8MM bool

	// TotalRAM and AvailStorage are informational and are echoed into the
	// RAM and storage reports.
	TotalRAM     uint64
	AvailStorage uint64
}

// Accelerated reports whether the accelerated matrix kernel may be used.
func (r Record) Accelerated() bool {
	return r.SVE && r.I8MM
}

// Workers returns the pool size for parallel runs, at least one.
func (r Record) Workers() int {
	return max(r.Cores, 1)
}

func (r Record) String() string {
	return fmt.Sprintf("cores=%d sve=%t i8mm=%t", r.Cores, r.SVE, r.I8MM)
}

// Detect builds a Record for the current host. dir selects the filesystem
// whose free space is reported; empty means os.TempDir(). Memory and storage
// probes that are unsupported on the platform leave their field at zero.
func Detect(dir string) Record {
	if dir == "" {
		dir = os.TempDir()
	}

	f := cpu.DetectFeatures()
	rec := Record{
		Cores: f.LogicalCores,
		SVE:   f.SVE,
		I8MM:  f.I8MM,
	}

	if mem, err := cpu.TotalMemory(); err == nil {
		rec.TotalRAM = mem
	}
	if avail, err := cpu.AvailableStorage(dir); err == nil {
		rec.AvailStorage = avail
	}

	return rec
}
