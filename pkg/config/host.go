//go:build linux || darwin

package config

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// KernelInfo returns the running kernel's identification, logged at startup
// so result files can be tied to the host that produced them.
func KernelInfo() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%s %s %s",
		unix.ByteSliceToString(uts.Sysname[:]),
		unix.ByteSliceToString(uts.Release[:]),
		unix.ByteSliceToString(uts.Machine[:]))
}
