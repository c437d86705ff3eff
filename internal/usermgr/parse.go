package usermgr

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type rawLine[T any] struct {
	raw   string
	entry *T
}

type parsedFile[T any] struct {
	lines []rawLine[T]
}

func (pf *parsedFile[T]) entries() []*T {
	out := make([]*T, 0, len(pf.lines))
	for i := range pf.lines {
		if pf.lines[i].entry != nil {
			out = append(out, pf.lines[i].entry)
		}
	}
	return out
}

// parse splits b into lines and hands every non-blank, non-comment line to
// fn. Lines fn declines (nil entry, nil error) are kept verbatim.
func parse[T any](b []byte, fn func(parts []string) (*T, error)) (parsedFile[T], error) {
	var pf parsedFile[T]
	s := bufio.NewScanner(bytes.NewReader(b))
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := s.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		// Keep trailing empty fields.
		e, err := fn(strings.Split(line, ":"))
		if err != nil {
			return parsedFile[T]{}, err
		}
		if e == nil {
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		pf.lines = append(pf.lines, rawLine[T]{entry: e})
	}
	if err := s.Err(); err != nil {
		return parsedFile[T]{}, err
	}
	return pf, nil
}

func (pf *parsedFile[T]) bytes(format func(*T) string) []byte {
	var buf strings.Builder
	for _, ln := range pf.lines {
		if ln.entry != nil {
			buf.WriteString(format(ln.entry))
		} else {
			buf.WriteString(ln.raw)
		}
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

func atoi(field, ctx string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid int %q in %s: %w", field, ctx, err)
	}
	return n, nil
}
