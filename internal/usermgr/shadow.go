package usermgr

import (
	"strings"
)

type ShadowFile struct {
	pf parsedFile[ShadowEntry]
}

// ParseShadow parses shadow(5) content. Short lines are padded so every
// entry has all nine fields.
func ParseShadow(b []byte) (*ShadowFile, error) {
	pf, err := parse(b, func(parts []string) (*ShadowEntry, error) {
		if len(parts) < 2 {
			return nil, nil
		}
		for len(parts) < 9 {
			parts = append(parts, "")
		}
		return &ShadowEntry{
			Name:       parts[0],
			Hash:       parts[1],
			LastChange: parts[2],
			Min:        parts[3],
			Max:        parts[4],
			Warn:       parts[5],
			Inactive:   parts[6],
			Expire:     parts[7],
			Reserved:   strings.Join(parts[8:], ":"),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &ShadowFile{pf: pf}, nil
}

func (f *ShadowFile) Find(name string) *ShadowEntry {
	for _, e := range f.pf.entries() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (f *ShadowFile) Bytes() []byte {
	return f.pf.bytes(func(e *ShadowEntry) string {
		return strings.Join([]string{
			e.Name, e.Hash, e.LastChange, e.Min, e.Max, e.Warn, e.Inactive, e.Expire, e.Reserved,
		}, ":")
	})
}
