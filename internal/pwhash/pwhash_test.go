package pwhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	h, err := Hash("MyP@ss1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(h, "$6$"), h)

	require.NoError(t, Verify(h, "MyP@ss1"))
	require.ErrorIs(t, Verify(h, "other"), ErrMismatch)
	require.NoError(t, Verify("!"+h, "MyP@ss1"))
}

func TestHashSaltsDiffer(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyUnsupported(t *testing.T) {
	require.ErrorIs(t, Verify("$y$j9T$abc$def", "x"), ErrUnsupportedHash)
	require.ErrorIs(t, Verify("*", "x"), ErrUnsupportedHash)
}
