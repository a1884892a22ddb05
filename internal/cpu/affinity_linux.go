//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core and returns the
// mask it replaced. Must be called after runtime.LockOSThread().
//
// cpuID wraps around runtime.NumCPU().
func pinToCore(cpuID int) (unix.CPUSet, error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return prev, err
	}

	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	// 0 = current thread
	return prev, unix.SchedSetaffinity(0, &mask)
}

// SetupWorkerAffinity locks the calling goroutine to its OS thread and pins
// that thread to core workerID. The returned cleanup restores the thread's
// previous mask before unlocking it, so the runtime never reuses a pinned
// thread for unrelated goroutines.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	prev, err := pinToCore(workerID)

	return func() {
		if err == nil {
			_ = unix.SchedSetaffinity(0, &prev)
		}
		runtime.UnlockOSThread()
	}
}
