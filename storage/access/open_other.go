//go:build !linux && !darwin

package access

import "os"

// dropCache is a no-op where no cache bypass hint is available.
func dropCache(*os.File) {}
