// Package guard gates both tools on the host platform and on administrative
// rights before anything touches the account store.
package guard

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
)

var (
	ErrPlatformMismatch = errors.New("unsupported platform")
	ErrNotPrivileged    = errors.New("administrative rights required")
)

var supported = map[string]bool{"linux": true, "windows": true}

// overridable in tests
var (
	goos       = runtime.GOOS
	privileged = Privileged
)

func CheckPlatform() error {
	if !supported[goos] {
		return fmt.Errorf("%w: %s (want linux or windows)", ErrPlatformMismatch, goos)
	}
	return nil
}

// Check runs the platform gate and then the privilege gate.
func Check() error {
	if err := CheckPlatform(); err != nil {
		return err
	}
	if !privileged() {
		return ErrNotPrivileged
	}
	return nil
}

// Advice is the operator-facing text for a Check failure.
func Advice(err error) string {
	switch {
	case errors.Is(err, ErrPlatformMismatch):
		return "This tool supports Windows and Linux only."
	case errors.Is(err, ErrNotPrivileged):
		bar := strings.Repeat("=", 50)
		return bar + "\nERROR: This tool must be run as an Administrator (root on Linux).\n" +
			"Please re-run it in an elevated shell or with sudo.\n" + bar
	}
	return ""
}

// CurrentUser names the account running the process, without any
// DOMAIN\ or MACHINE\ prefix.
func CurrentUser() (string, error) {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = os.Getenv("USERNAME")
	}
	name = bareName(name)
	if name == "" {
		return "", errors.New("cannot determine the current user")
	}
	return name, nil
}

// SudoUser is the operator behind sudo, if any.
func SudoUser() string {
	return bareName(os.Getenv("SUDO_USER"))
}

func bareName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, `\`); i >= 0 {
		s = s[i+1:]
	}
	return s
}
