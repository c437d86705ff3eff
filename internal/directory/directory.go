// Package directory is the boundary to the host's local account store.
//
// A Directory lists the enabled local accounts, disables one account and
// sets one account's password. Every call is a single blocking attempt;
// there are no retries. Backends exist per platform:
//
//	command  usermod/chpasswd on linux, powershell/net user on windows
//	files    passwd/shadow rewritten in place under a host root (linux)
//	netapi   NetUserEnum/NetUserSetInfo (windows/amd64)
package directory

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/hnrobert/acctguard/internal/usercmd"
)

// Directory is the capability the tools act through.
type Directory interface {
	// ListEnabled returns the enabled accounts in the order the store
	// reports them. Any failure is an ErrQuery.
	ListEnabled(ctx context.Context) ([]string, error)
	// Disable clears the account's enabled flag. Disabling an already
	// disabled account is not a failure.
	Disable(ctx context.Context, name string) error
	// SetPassword replaces the account's password, subject to the store's
	// complexity policy.
	SetPassword(ctx context.Context, name, password string) error
}

// Commander runs an external command; *usercmd.Runner implements it.
type Commander interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

type Options struct {
	// Backend names the implementation; empty selects the platform default.
	Backend string
	// HostRoot is the root the files backend resolves etc/passwd and
	// etc/shadow against.
	HostRoot string
	// Timeout bounds each external command. Zero means none.
	Timeout time.Duration
	// Runner overrides command execution, mainly for tests.
	Runner Commander
}

func (o Options) runner() Commander {
	if o.Runner != nil {
		return o.Runner
	}
	r := usercmd.New()
	r.Timeout = o.Timeout
	return r
}

type opener func(Options) (Directory, error)

var backends = map[string]opener{
	"command": openCommand,
}

// Backends lists the backend names available on this platform.
func Backends() []string {
	out := make([]string, 0, len(backends))
	for name := range backends {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultBackend is the backend Open uses when none is named.
func DefaultBackend() string {
	return defaultBackend
}

// Open returns the named backend for this platform.
func Open(opts Options) (Directory, error) {
	name := opts.Backend
	if name == "" {
		name = defaultBackend
	}
	open, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q on %s (available: %v)", ErrUnknownBackend, name, runtime.GOOS, Backends())
	}
	return open(opts)
}

func openCommand(opts Options) (Directory, error) {
	if runtime.GOOS == "windows" {
		return NewWindowsCommand(opts.runner()), nil
	}
	return NewLinuxCommand(opts.runner()), nil
}
