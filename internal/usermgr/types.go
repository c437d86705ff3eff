package usermgr

import (
	"path"
	"strconv"
	"strings"
)

type PasswdEntry struct {
	Name   string
	Passwd string
	UID    int
	GID    int
	Gecos  string
	Home   string
	Shell  string
}

// noLoginShells are shells that refuse interactive logins.
var noLoginShells = map[string]bool{
	"nologin":  true,
	"false":    true,
	"sync":     true,
	"shutdown": true,
	"halt":     true,
}

// CanLogin reports whether the entry has an interactive login shell. An
// empty shell means /bin/sh.
func (e PasswdEntry) CanLogin() bool {
	if e.Shell == "" {
		return true
	}
	return !noLoginShells[path.Base(e.Shell)]
}

type ShadowEntry struct {
	Name       string
	Hash       string
	LastChange string
	Min        string
	Max        string
	Warn       string
	Inactive   string
	Expire     string
	Reserved   string
}

// Locked reports whether the password hash carries the "!" lock prefix
// written by usermod -L and passwd -l.
func (e ShadowEntry) Locked() bool {
	return strings.HasPrefix(e.Hash, "!")
}

// Expired reports whether the account expiry date (days since epoch) is on
// or before today. An expiry of 0 is read as no expiry, as shadow(5) allows.
func (e ShadowEntry) Expired(today int) bool {
	if e.Expire == "" {
		return false
	}
	d, err := strconv.Atoi(e.Expire)
	if err != nil || d == 0 {
		return false
	}
	return d <= today
}

// Lock disables the entry the way usermod -L -e 1 does.
func (e *ShadowEntry) Lock() {
	if !e.Locked() {
		e.Hash = "!" + e.Hash
	}
	e.Expire = "1"
}
