// Package cpu wraps the host-specific pieces the benchmarks need: thread
// affinity for pinned workers and hardware feature detection.
package cpu

import (
	"runtime"

	xcpu "golang.org/x/sys/cpu"
)

// Features is the raw view of the host that capability detection is built
// from.
type Features struct {
	LogicalCores int
	SVE          bool
	I8MM         bool
}

// DetectFeatures reads the core count and the ARM64 matrix extensions. On
// other architectures both extension flags are false.
func DetectFeatures() Features {
	f := Features{LogicalCores: runtime.NumCPU()}

	if runtime.GOARCH == "arm64" {
		f.SVE = xcpu.ARM64.HasSVE
		f.I8MM = xcpu.ARM64.HasI8MM
	}

	return f
}
