// Package usercmd runs the host's account-management commands.
package usercmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes commands and turns a non-zero exit into an Error that
// carries the command's own diagnostic text.
type Runner struct {
	// Timeout bounds each command. Zero means wait for as long as it takes.
	Timeout time.Duration
}

func New() *Runner {
	return &Runner{}
}

// Error is a failed command invocation. Args are kept out of Error() since
// some tools take a password on the command line.
type Error struct {
	Name   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Run executes name with args, feeding stdin when non-nil, and returns
// stdout. On failure the diagnostic is stderr, or stdout when stderr is
// empty (net.exe reports errors on stdout).
func (r *Runner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		return stdout.Bytes(), &Error{Name: name, Detail: detail, Err: err}
	}
	return stdout.Bytes(), nil
}
