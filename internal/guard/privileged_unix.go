//go:build unix

package guard

import "golang.org/x/sys/unix"

// Privileged reports whether the effective uid is root.
func Privileged() bool {
	return unix.Geteuid() == 0
}
