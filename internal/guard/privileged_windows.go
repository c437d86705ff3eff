//go:build windows

package guard

import "golang.org/x/sys/windows"

// Privileged reports whether the process token is elevated, or failing that
// whether it belongs to the builtin Administrators group. Any error counts
// as not privileged.
func Privileged() bool {
	if windows.GetCurrentProcessToken().IsElevated() {
		return true
	}
	sid, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false
	}
	member, err := windows.Token(0).IsMember(sid)
	return err == nil && member
}
