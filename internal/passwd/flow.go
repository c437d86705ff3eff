// Package passwd collects a new password for one local account and hands
// it to the account directory.
package passwd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hnrobert/acctguard/internal/directory"
	"github.com/hnrobert/acctguard/internal/logger"
)

var (
	ErrCancelled     = errors.New("input cancelled")
	ErrEmptyUsername = errors.New("no username entered")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrMismatch      = errors.New("passwords do not match")
)

// Prompter reads operator input. ReadSecret must not echo. Both return
// ErrCancelled on end of input or interrupt.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

type Flow struct {
	Prompt Prompter
	Dir    directory.Directory
	Out    io.Writer
}

func (f *Flow) printf(format string, args ...interface{}) {
	if f.Out != nil {
		_, _ = fmt.Fprintf(f.Out, format, args...)
	}
}

// Run asks for the username and the new password twice, then makes a
// single SetPassword call. Nothing reaches the directory unless all input
// is valid.
func (f *Flow) Run(ctx context.Context) error {
	username, err := f.Prompt.ReadLine("Enter the username: ")
	if err != nil {
		f.inputFailed(err)
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		f.printf("No username entered. Exiting.\n")
		return ErrEmptyUsername
	}

	pw, err := f.Prompt.ReadSecret("Enter the new password: ")
	if err == nil {
		var confirm string
		confirm, err = f.Prompt.ReadSecret("Confirm the new password: ")
		if err == nil && pw != confirm {
			f.printf("\n[ERROR] Passwords do not match. Please try again.\n")
			return ErrMismatch
		}
	}
	if err != nil {
		f.inputFailed(err)
		return err
	}
	if pw == "" {
		f.printf("\n[ERROR] Password cannot be empty. Exiting.\n")
		return ErrEmptyPassword
	}

	f.printf("\n[*] Attempting to change password for user: %s\n", username)
	if err := f.Dir.SetPassword(ctx, username, pw); err != nil {
		f.printf("  [ERROR] Failed to change password for user: %s.\n", username)
		f.printf("  Details: %s\n", detail(err))
		if h := Hint(err); h != "" {
			f.printf("  [HINT] %s\n", h)
		}
		logger.Error("set password for %s (%s): %v", username, directory.KindOf(err), err)
		return err
	}
	f.printf("  [SUCCESS] Successfully changed password for user: %s\n", username)
	logger.Info("password changed for %s", username)
	return nil
}

func (f *Flow) inputFailed(err error) {
	if errors.Is(err, ErrCancelled) {
		f.printf("\nInput cancelled. Exiting.\n")
		return
	}
	f.printf("\n[ERROR] Could not read input: %v\n", err)
	logger.Error("read input: %v", err)
}

// Hint is the operator advice for a failed change, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, directory.ErrAccessDenied):
		return "This tool must be run as an Administrator."
	case errors.Is(err, directory.ErrComplexity):
		return "The password does not meet the system's complexity requirements."
	}
	return ""
}

func detail(err error) string {
	var de *directory.Error
	if errors.As(err, &de) && de.Detail != "" {
		return de.Detail
	}
	return err.Error()
}
