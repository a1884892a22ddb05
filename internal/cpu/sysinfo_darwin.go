//go:build darwin

package cpu

import "golang.org/x/sys/unix"

// TotalMemory returns the installed RAM in bytes.
func TotalMemory() (uint64, error) {
	return unix.SysctlUint64("hw.memsize")
}

// AvailableStorage returns the bytes available to unprivileged users on the
// filesystem holding dir.
func AvailableStorage(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
