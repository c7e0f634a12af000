//go:build unix

package envinfo

import "golang.org/x/sys/unix"

// osVersion reports the kernel name and release, e.g. "Linux 6.8.0".
func osVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Sysname[:]) + " " + unix.ByteSliceToString(uts.Release[:])
}
