package usermgr

import (
	"fmt"
	"strings"
)

type PasswdFile struct {
	pf parsedFile[PasswdEntry]
}

// ParsePasswd parses passwd(5) content, such as /etc/passwd or the output
// of "getent passwd".
func ParsePasswd(b []byte) (*PasswdFile, error) {
	pf, err := parse(b, func(parts []string) (*PasswdEntry, error) {
		if len(parts) < 7 {
			return nil, nil
		}
		uid, err := atoi(parts[2], "passwd.uid")
		if err != nil {
			return nil, err
		}
		gid, err := atoi(parts[3], "passwd.gid")
		if err != nil {
			return nil, err
		}
		return &PasswdEntry{
			Name:   parts[0],
			Passwd: parts[1],
			UID:    uid,
			GID:    gid,
			Gecos:  parts[4],
			Home:   parts[5],
			Shell:  strings.Join(parts[6:], ":"),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &PasswdFile{pf: pf}, nil
}

func (f *PasswdFile) Find(name string) *PasswdEntry {
	for _, e := range f.pf.entries() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// List returns the entries in file order.
func (f *PasswdFile) List() []PasswdEntry {
	out := make([]PasswdEntry, 0, len(f.pf.lines))
	for _, e := range f.pf.entries() {
		out = append(out, *e)
	}
	return out
}

func (f *PasswdFile) Bytes() []byte {
	return f.pf.bytes(func(e *PasswdEntry) string {
		return fmt.Sprintf("%s:%s:%d:%d:%s:%s:%s",
			e.Name, e.Passwd, e.UID, e.GID, e.Gecos, e.Home, e.Shell)
	})
}
