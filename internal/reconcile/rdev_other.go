//go:build !linux

package reconcile

import "io/fs"

// rdevOf reports no device number on platforms without Linux stat data;
// the zero-rdev placeholder convention only exists under the HymoFS
// kernel module anyway.
func rdevOf(info fs.FileInfo) (uint64, bool) {
	return 0, false
}
