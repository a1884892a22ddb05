//go:build !linux && !windows

package cpu

import "runtime"

// SetupWorkerAffinity only locks the goroutine to its OS thread. macOS and
// the BSDs expose no per-thread core mask.
func SetupWorkerAffinity(int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
