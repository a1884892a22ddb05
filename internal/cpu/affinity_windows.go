//go:build windows

package cpu

import (
	"runtime"

	"golang.org/x/sys/windows"
)

var setThreadAffinityMask = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadAffinityMask")

// threadMask sets the affinity of the current thread and returns the old one,
// or 0 if the call failed.
func threadMask(mask uintptr) uintptr {
	prev, _, _ := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	return prev
}

// SetupWorkerAffinity locks the goroutine to its OS thread and pins it to
// core workerID modulo the core count. The cleanup restores the old mask.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	n := runtime.NumCPU()
	core := ((workerID % n) + n) % n
	prev := threadMask(uintptr(1) << core)

	return func() {
		if prev != 0 {
			threadMask(prev)
		}
		runtime.UnlockOSThread()
	}
}
