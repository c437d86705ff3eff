package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, os string, priv bool) {
	t.Helper()
	oldOS, oldPriv := goos, privileged
	goos = os
	privileged = func() bool { return priv }
	t.Cleanup(func() { goos, privileged = oldOS, oldPriv })
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		os   string
		priv bool
		want error
	}{
		{"linux root", "linux", true, nil},
		{"windows elevated", "windows", true, nil},
		{"linux unprivileged", "linux", false, ErrNotPrivileged},
		{"darwin", "darwin", true, ErrPlatformMismatch},
		{"platform before privilege", "freebsd", false, ErrPlatformMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub(t, tc.os, tc.priv)
			err := Check()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCheckPlatformMessageNamesOS(t *testing.T) {
	stub(t, "plan9", true)
	require.ErrorContains(t, CheckPlatform(), "plan9")
}

func TestBareName(t *testing.T) {
	require.Equal(t, "alice", bareName(`WORKGROUP\alice`))
	require.Equal(t, "alice", bareName(" alice "))
	require.Equal(t, "", bareName(""))
}

func TestSudoUser(t *testing.T) {
	t.Setenv("SUDO_USER", "bob")
	require.Equal(t, "bob", SudoUser())
	t.Setenv("SUDO_USER", "")
	require.Equal(t, "", SudoUser())
}

func TestCurrentUser(t *testing.T) {
	name, err := CurrentUser()
	require.NoError(t, err)
	require.NotEmpty(t, name)
	require.NotContains(t, name, `\`)
}

func TestAdvice(t *testing.T) {
	require.Contains(t, Advice(ErrNotPrivileged), "must be run as an Administrator")
	stub(t, "darwin", true)
	require.Contains(t, Advice(CheckPlatform()), "Windows and Linux")
	require.Empty(t, Advice(nil))
}
