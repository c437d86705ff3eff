//go:build unix

package usercmd

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunReturnsStdout(t *testing.T) {
	out, err := New().Run(context.Background(), nil, "sh", "-c", "printf 'a\\nb\\n'")
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(out))
}

func TestRunFeedsStdin(t *testing.T) {
	out, err := New().Run(context.Background(), []byte("alice:secret\n"), "cat")
	require.NoError(t, err)
	require.Equal(t, "alice:secret\n", string(out))
}

func TestRunErrorPrefersStderr(t *testing.T) {
	_, err := New().Run(context.Background(), nil, "sh", "-c", "echo out; echo 'usermod: user x does not exist' >&2; exit 6")
	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "sh", cmdErr.Name)
	require.Equal(t, "usermod: user x does not exist", cmdErr.Detail)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 6, exitErr.ExitCode())
}

func TestRunErrorFallsBackToStdout(t *testing.T) {
	_, err := New().Run(context.Background(), nil, "sh", "-c", "echo 'System error 5 has occurred. Access is denied.'; exit 2")
	require.EqualError(t, err, "sh: System error 5 has occurred. Access is denied.")
}

func TestRunMissingBinary(t *testing.T) {
	_, err := New().Run(context.Background(), nil, "acctguard-definitely-missing")
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestRunTimeout(t *testing.T) {
	r := &Runner{Timeout: 50 * time.Millisecond}
	_, err := r.Run(context.Background(), nil, "sleep", "5")
	require.Error(t, err)
}
