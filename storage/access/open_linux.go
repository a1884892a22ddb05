//go:build linux

package access

import (
	"os"

	"golang.org/x/sys/unix"
)

// dropCache asks the kernel to evict the file's cached pages. It is a hint;
// failure leaves the file usable, so the error is ignored.
func dropCache(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_DONTNEED)
}
