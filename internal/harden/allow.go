package harden

import (
	"sort"
	"strings"
)

// CriticalAccounts are never disabled whatever the configuration says.
var CriticalAccounts = []string{
	"administrator",
	"guest",
	"defaultaccount",
	"wdagutilityaccount",
	"root",
}

// AllowSet holds lower-cased account names.
type AllowSet map[string]struct{}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NewAllowSet(names ...string) AllowSet {
	a := AllowSet{}
	a.Add(names...)
	return a
}

// Add inserts names and reports whether any of them was new.
func (a AllowSet) Add(names ...string) bool {
	added := false
	for _, n := range names {
		n = normalize(n)
		if n == "" {
			continue
		}
		if _, ok := a[n]; !ok {
			a[n] = struct{}{}
			added = true
		}
	}
	return added
}

func (a AllowSet) Contains(name string) bool {
	_, ok := a[normalize(name)]
	return ok
}

func (a AllowSet) Sorted() []string {
	out := make([]string, 0, len(a))
	for n := range a {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// BuildAllowSet is the configured list plus the invoking user(s) plus
// CriticalAccounts.
func BuildAllowSet(configured []string, self ...string) AllowSet {
	return buildAllowSet(configured, self, nil)
}

// buildAllowSet calls onSafety for every self name the configured list
// did not already cover.
func buildAllowSet(configured, self []string, onSafety func(string)) AllowSet {
	a := NewAllowSet(configured...)
	for _, u := range self {
		if a.Add(u) && onSafety != nil {
			onSafety(strings.TrimSpace(u))
		}
	}
	a.Add(CriticalAccounts...)
	return a
}
