// Package policy enforces a local password complexity policy for backends
// that write password hashes themselves.
package policy

import (
	"fmt"
	"strings"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	DefaultMinLength  = 8
	DefaultMinClasses = 3
	DefaultMinScore   = 2
)

// Violation is a single failed rule. Its text always mentions complexity so
// callers matching on diagnostics classify it as a policy problem.
type Violation struct {
	Code    string
	Message string
}

func (v *Violation) Error() string {
	return "password does not meet the complexity requirements: " + v.Message
}

// Rule checks one property of a password for the named account.
type Rule interface {
	Check(username, password string) error
}

type RuleFunc func(username, password string) error

func (f RuleFunc) Check(username, password string) error { return f(username, password) }

// Policy applies rules in order and stops at the first violation.
type Policy struct {
	rules []Rule
}

func New(rules ...Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...)}
}

// Default mirrors the stock Windows "complexity requirements" setting:
// minimum length, three of four character classes, no account name inside
// the password, plus a zxcvbn strength floor.
func Default() *Policy {
	return New(
		MinLength(DefaultMinLength),
		CharacterClasses(DefaultMinClasses),
		NotContainingUsername(),
		Strength(DefaultMinScore),
	)
}

func (p *Policy) Validate(username, password string) error {
	if p == nil {
		return nil
	}
	for _, r := range p.rules {
		if err := r.Check(username, password); err != nil {
			return err
		}
	}
	return nil
}

func MinLength(n int) Rule {
	return RuleFunc(func(_, password string) error {
		if len([]rune(password)) < n {
			return &Violation{Code: "min_length", Message: fmt.Sprintf("must be at least %d characters long", n)}
		}
		return nil
	})
}

// CharacterClasses requires characters from at least n of upper, lower,
// digit and symbol.
func CharacterClasses(n int) Rule {
	return RuleFunc(func(_, password string) error {
		var upper, lower, digit, symbol bool
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsSymbol(r) || unicode.IsPunct(r):
				symbol = true
			}
		}
		classes := 0
		for _, ok := range []bool{upper, lower, digit, symbol} {
			if ok {
				classes++
			}
		}
		if classes < n {
			return &Violation{Code: "character_classes", Message: fmt.Sprintf("must include at least %d character types", n)}
		}
		return nil
	})
}

func NotContainingUsername() Rule {
	return RuleFunc(func(username, password string) error {
		u := strings.ToLower(strings.TrimSpace(username))
		if len(u) < 3 {
			return nil
		}
		if strings.Contains(strings.ToLower(password), u) {
			return &Violation{Code: "contains_username", Message: "must not contain the account name"}
		}
		return nil
	})
}

// Strength rejects passwords whose zxcvbn score is below minScore (0-4).
func Strength(minScore int) Rule {
	return RuleFunc(func(username, password string) error {
		if minScore <= 0 {
			return nil
		}
		if minScore > 4 {
			minScore = 4
		}
		res := zxcvbn.PasswordStrength(password, []string{username})
		if res.Score < minScore {
			return &Violation{Code: "weak_password", Message: "is too easy to guess"}
		}
		return nil
	})
}
