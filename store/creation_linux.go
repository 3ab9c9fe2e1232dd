//go:build linux

package store

import "golang.org/x/sys/unix"

// creationTime prefers the birth time reported by statx and falls back to
// the modification time on filesystems that do not record one.
func creationTime(path string) int64 {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if err != nil {
		return 0
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		return stx.Btime.Sec
	}
	return stx.Mtime.Sec
}
