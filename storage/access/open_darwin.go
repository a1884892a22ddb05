//go:build darwin

package access

import (
	"os"

	"golang.org/x/sys/unix"
)

// dropCache turns off the unified buffer cache for the file. os.File.Sync
// already issues F_FULLFSYNC on this platform.
func dropCache(f *os.File) {
	_, _ = unix.FcntlInt(f.Fd(), unix.F_NOCACHE, 1)
}
