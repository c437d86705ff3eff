package passwd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/acctguard/internal/directory"
)

type scripted struct {
	lines   []string
	secrets []string
	err     error
}

func (s *scripted) ReadLine(string) (string, error) {
	if len(s.lines) == 0 {
		return "", ErrCancelled
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *scripted) ReadSecret(string) (string, error) {
	if len(s.secrets) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", ErrCancelled
	}
	p := s.secrets[0]
	s.secrets = s.secrets[1:]
	return p, nil
}

type setCall struct{ name, password string }

type recordingDir struct {
	calls []setCall
	err   error
}

func (d *recordingDir) ListEnabled(context.Context) ([]string, error) { return nil, nil }
func (d *recordingDir) Disable(context.Context, string) error         { return nil }
func (d *recordingDir) SetPassword(_ context.Context, name, password string) error {
	d.calls = append(d.calls, setCall{name, password})
	return d.err
}

func run(t *testing.T, p *scripted, dir *recordingDir) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := (&Flow{Prompt: p, Dir: dir, Out: &out}).Run(context.Background())
	return out.String(), err
}

func TestFlowValidation(t *testing.T) {
	tests := []struct {
		name    string
		prompt  *scripted
		want    error
		message string
	}{
		{"mismatch", &scripted{lines: []string{"bob"}, secrets: []string{"abc", "xyz"}}, ErrMismatch, "Passwords do not match"},
		{"empty password", &scripted{lines: []string{"bob"}, secrets: []string{"", ""}}, ErrEmptyPassword, "Password cannot be empty"},
		{"empty username", &scripted{lines: []string{"   "}}, ErrEmptyUsername, "No username entered"},
		{"cancelled at username", &scripted{}, ErrCancelled, "cancelled"},
		{"cancelled at confirm", &scripted{lines: []string{"bob"}, secrets: []string{"abc"}}, ErrCancelled, "Input cancelled"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := &recordingDir{}
			out, err := run(t, tc.prompt, dir)
			require.ErrorIs(t, err, tc.want)
			assert.Contains(t, out, tc.message)
			assert.Empty(t, dir.calls)
		})
	}
}

func TestFlowSetsPasswordOnce(t *testing.T) {
	dir := &recordingDir{}
	out, err := run(t, &scripted{lines: []string{" bob "}, secrets: []string{"MyP@ss1", "MyP@ss1"}}, dir)
	require.NoError(t, err)
	require.Equal(t, []setCall{{"bob", "MyP@ss1"}}, dir.calls)
	assert.Contains(t, out, "[SUCCESS] Successfully changed password for user: bob")
	assert.NotContains(t, out, "MyP@ss1")
}

func TestFlowReportsDirectoryFailure(t *testing.T) {
	tests := []struct {
		kind directory.Kind
		hint string
	}{
		{directory.KindAccessDenied, "must be run as an Administrator"},
		{directory.KindComplexity, "complexity requirements"},
		{directory.KindUnknown, ""},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			dir := &recordingDir{err: &directory.Error{Op: directory.OpSetPassword, Account: "bob", Kind: tc.kind, Detail: "net said no"}}
			out, err := run(t, &scripted{lines: []string{"bob"}, secrets: []string{"x1!Y", "x1!Y"}}, dir)
			require.Error(t, err)
			require.Len(t, dir.calls, 1)
			assert.Contains(t, out, "Details: net said no")
			if tc.hint == "" {
				assert.NotContains(t, out, "[HINT]")
			} else {
				assert.Contains(t, out, tc.hint)
			}
		})
	}
}

func TestHint(t *testing.T) {
	assert.Empty(t, Hint(errors.New("boom")))
	assert.Empty(t, Hint(nil))
}

type brokenInput struct{ err error }

func (b brokenInput) ReadLine(string) (string, error)   { return "", b.err }
func (b brokenInput) ReadSecret(string) (string, error) { return "", b.err }

func TestFlowReadErrorIsNotCancellation(t *testing.T) {
	ioErr := errors.New("read /dev/tty: input/output error")
	dir := &recordingDir{}
	var out bytes.Buffer
	err := (&Flow{Prompt: brokenInput{ioErr}, Dir: dir, Out: &out}).Run(context.Background())

	require.ErrorIs(t, err, ioErr)
	assert.NotContains(t, out.String(), "cancelled")
	assert.Contains(t, out.String(), "input/output error")
	assert.Empty(t, dir.calls)
}
