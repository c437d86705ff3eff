package directory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"System error 5 has occurred.\n\nAccess is denied.", KindAccessDenied},
		{"usermod: Permission denied.", KindAccessDenied},
		{"The password does not meet the password policy requirements. Check the minimum password length, password complexity and password history requirements.", KindComplexity},
		{"BAD PASSWORD: The password is shorter than 8 characters", KindComplexity},
		{"The user name could not be found.", KindNotFound},
		{"usermod: user 'ghost' does not exist", KindNotFound},
		{"something else went wrong", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), tt.text)
	}
}

func TestClassifyAccessDeniedWinsOverComplexity(t *testing.T) {
	require.Equal(t, KindAccessDenied, Classify("access denied while checking password complexity"))
}

func TestErrorIs(t *testing.T) {
	list := &Error{Op: OpList, Detail: "boom"}
	require.ErrorIs(t, list, ErrQuery)
	require.NotErrorIs(t, list, ErrAccessDenied)

	wrapped := fmt.Errorf("run: %w", &Error{Op: OpSetPassword, Account: "bob", Kind: KindComplexity, Detail: "too short"})
	require.ErrorIs(t, wrapped, ErrComplexity)
	require.NotErrorIs(t, wrapped, ErrQuery)
	require.Equal(t, KindComplexity, KindOf(wrapped))
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Op: OpDisable, Account: "alice", Detail: "The user name could not be found."}
	require.Equal(t, "disable alice: The user name could not be found.", e.Error())

	e = &Error{Op: OpList, Err: errors.New("exit status 2")}
	require.Equal(t, "list enabled accounts: exit status 2", e.Error())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "access-denied", KindAccessDenied.String())
	require.Equal(t, "complexity", KindComplexity.String())
	require.Equal(t, "not-found", KindNotFound.String())
	require.Equal(t, "unknown", KindUnknown.String())
}

func TestClassifyNetAPI(t *testing.T) {
	require.Equal(t, KindAccessDenied, classifyNetAPI("Unable to process. 5"))
	require.Equal(t, KindComplexity, classifyNetAPI("Unable to process. 2245"))
	require.Equal(t, KindComplexity, classifyNetAPI("Unable to process. 2203"))
	require.Equal(t, KindNotFound, classifyNetAPI("Unable to process. 2221"))
	require.Equal(t, KindNotFound, classifyNetAPI("unable to get data structure"))
	require.Equal(t, KindUnknown, classifyNetAPI("Unable to process. 87"))
}
