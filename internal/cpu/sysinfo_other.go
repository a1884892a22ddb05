//go:build !linux && !darwin

package cpu

import "errors"

var errUnsupported = errors.New("not supported on this platform")

// TotalMemory is not implemented on this platform.
func TotalMemory() (uint64, error) {
	return 0, errUnsupported
}

// AvailableStorage is not implemented on this platform.
func AvailableStorage(dir string) (uint64, error) {
	return 0, errUnsupported
}
