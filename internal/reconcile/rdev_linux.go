//go:build linux

package reconcile

import (
	"io/fs"
	"syscall"
)

// rdevOf extracts the device number of a special file from the platform
// stat data. The second return is false when the data is unavailable, in
// which case the entry never classifies as a hide placeholder.
func rdevOf(info fs.FileInfo) (uint64, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Rdev), true
}
