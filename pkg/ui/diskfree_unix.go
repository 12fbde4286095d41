//go:build unix

package ui

import "golang.org/x/sys/unix"

// freeDiskBytes reports the free space on the filesystem containing
// path, for the footer in filesystem mode.
func freeDiskBytes(path string) (int64, bool) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, false
	}
	return int64(st.Bavail) * int64(st.Bsize), true
}
