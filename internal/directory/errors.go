package directory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuery marks a failed enumeration of enabled accounts.
	ErrQuery        = errors.New("directory query failed")
	ErrAccessDenied = errors.New("access denied")
	ErrComplexity   = errors.New("password does not meet complexity requirements")
	ErrNotFound     = errors.New("account not found")

	ErrUnknownBackend = errors.New("unknown directory backend")
)

// Kind classifies a failed directory operation for operator feedback.
type Kind int

const (
	KindUnknown Kind = iota
	KindAccessDenied
	KindComplexity
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAccessDenied:
		return "access-denied"
	case KindComplexity:
		return "complexity"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

const (
	OpList        = "list enabled accounts"
	OpDisable     = "disable"
	OpSetPassword = "set password"
)

// Error is a failed directory operation. Detail is the store's own
// diagnostic text.
type Error struct {
	Op      string
	Account string
	Kind    Kind
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	subject := e.Op
	if e.Account != "" {
		subject = fmt.Sprintf("%s %s", e.Op, e.Account)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", subject, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", subject, e.Err)
	}
	return subject + ": failed"
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrQuery:
		return e.Op == OpList
	case ErrAccessDenied:
		return e.Kind == KindAccessDenied
	case ErrComplexity:
		return e.Kind == KindComplexity
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// KindOf returns the Kind of err, KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

var (
	accessDeniedText = []string{
		"access is denied",
		"access denied",
		"permission denied",
		"operation not permitted",
		"system error 5 ",
		"only root",
	}
	complexityText = []string{
		"complexity",
		"password policy",
		"does not meet",
		"bad password",
		"too short",
		"too simple",
		"too weak",
	}
	notFoundText = []string{
		"could not be found",
		"does not exist",
		"no such user",
		"unknown user",
		"user not found",
	}
)

// Classify maps a diagnostic emitted by an account tool to a Kind. Account
// tools do not return structured codes, so this is substring matching on the
// lowercased text; access problems win over policy problems.
func Classify(text string) Kind {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, accessDeniedText):
		return KindAccessDenied
	case containsAny(t, complexityText):
		return KindComplexity
	case containsAny(t, notFoundText):
		return KindNotFound
	}
	return KindUnknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// opError builds an *Error for op, classifying err by its text.
func opError(op, account string, err error) error {
	if err == nil {
		return nil
	}
	detail := err.Error()
	return &Error{Op: op, Account: account, Kind: Classify(detail), Detail: detail, Err: err}
}
