package usermgr

import "regexp"

var usernameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]{0,31}\$?$`)

// ValidUsername accepts the portable shadow-utils name set: letters, digits,
// underscore, dot and dash, starting with a letter or underscore, optionally
// ending in "$" for machine accounts.
func ValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}
