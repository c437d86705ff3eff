package usermgr

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hnrobert/acctguard/internal/hostfs"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNoShadowEntry   = errors.New("no shadow entry")
	ErrInvalidUsername = errors.New("invalid username")
)

// Today returns the shadow(5) day number for t.
func Today(t time.Time) int {
	return int(t.Unix() / 86400)
}

// EnabledNames returns, in passwd order, the accounts that can log in: an
// interactive shell, a shadow entry without the lock prefix and no past
// expiry date. Accounts without a shadow entry are judged by shell alone.
func EnabledNames(pw *PasswdFile, sh *ShadowFile, today int) []string {
	var out []string
	for _, e := range pw.List() {
		if !e.CanLogin() {
			continue
		}
		if se := sh.Find(e.Name); se != nil && (se.Locked() || se.Expired(today)) {
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

// Manager edits passwd/shadow under a host root.
type Manager struct {
	FS  hostfs.FS
	Now func() time.Time
}

func NewManager(fs hostfs.FS) *Manager {
	return &Manager{FS: fs, Now: time.Now}
}

func (m *Manager) today() int {
	if m.Now == nil {
		return Today(time.Now())
	}
	return Today(m.Now())
}

func (m *Manager) LoadAll() (*PasswdFile, *ShadowFile, error) {
	b, err := m.FS.ReadFile(hostfs.EtcPasswdRel)
	if err != nil {
		return nil, nil, err
	}
	pw, err := ParsePasswd(b)
	if err != nil {
		return nil, nil, err
	}
	b, err = m.FS.ReadFile(hostfs.EtcShadowRel)
	if err != nil {
		return nil, nil, err
	}
	sh, err := ParseShadow(b)
	if err != nil {
		return nil, nil, err
	}
	return pw, sh, nil
}

// ListEnabled returns EnabledNames for the host files.
func (m *Manager) ListEnabled() ([]string, error) {
	pw, sh, err := m.LoadAll()
	if err != nil {
		return nil, err
	}
	return EnabledNames(pw, sh, m.today()), nil
}

// Lock disables username. Locking an already locked account rewrites
// nothing.
func (m *Manager) Lock(username string) error {
	se, sh, err := m.shadowEntry(username)
	if err != nil {
		return err
	}
	if se.Locked() && se.Expired(m.today()) {
		return nil
	}
	se.Lock()
	return m.FS.WriteFileAtomic(hostfs.EtcShadowRel, sh.Bytes(), 0o600)
}

// SetHash stores an already hashed password and resets the last-change
// day. A lock prefix is dropped along with the old hash; expiry is left alone.
func (m *Manager) SetHash(username, hash string) error {
	se, sh, err := m.shadowEntry(username)
	if err != nil {
		return err
	}
	se.Hash = hash
	se.LastChange = strconv.Itoa(m.today())
	return m.FS.WriteFileAtomic(hostfs.EtcShadowRel, sh.Bytes(), 0o600)
}

// CurrentHash returns the stored hash for username, lock prefix included.
func (m *Manager) CurrentHash(username string) (string, error) {
	se, _, err := m.shadowEntry(username)
	if err != nil {
		return "", err
	}
	return se.Hash, nil
}

func (m *Manager) shadowEntry(username string) (*ShadowEntry, *ShadowFile, error) {
	if !ValidUsername(username) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	pw, sh, err := m.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	if pw.Find(username) == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	se := sh.Find(username)
	if se == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoShadowEntry, username)
	}
	return se, sh, nil
}
