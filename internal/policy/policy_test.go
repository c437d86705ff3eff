package policy

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultAcceptsStrongPassword(t *testing.T) {
	if err := Default().Validate("bob", "C0mplex!Passphrase#2025"); err != nil {
		t.Fatalf("expected password to pass, got %v", err)
	}
}

func TestDefaultViolations(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		code     string
	}{
		{"short", "bob", "Ab1!", "min_length"},
		{"one class", "bob", "lowercaseonly", "character_classes"},
		{"username inside", "alice", "xxAlice#2025yy", "contains_username"},
		{"weak", "bob", "Password1", "weak_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().Validate(tt.user, tt.password)
			var v *Violation
			if !errors.As(err, &v) {
				t.Fatalf("expected *Violation, got %v", err)
			}
			if v.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, v.Code)
			}
			if !strings.Contains(err.Error(), "complexity") {
				t.Fatalf("violation text must mention complexity: %q", err.Error())
			}
		})
	}
}

func TestNilPolicyAcceptsAnything(t *testing.T) {
	var p *Policy
	if err := p.Validate("x", ""); err != nil {
		t.Fatalf("nil policy returned %v", err)
	}
}

func TestCustomRules(t *testing.T) {
	p := New(MinLength(2))
	if err := p.Validate("x", "ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Validate("x", "a"); err == nil {
		t.Fatal("expected min length violation")
	}
}
