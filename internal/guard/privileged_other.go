//go:build !unix && !windows

package guard

func Privileged() bool { return false }
