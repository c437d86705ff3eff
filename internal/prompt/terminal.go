// Package prompt reads operator input from a terminal, without echo for
// secrets. Piped input is read line by line.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hnrobert/acctguard/internal/passwd"
)

// Terminal is a passwd.Prompter. Once ctx is done every pending and later
// read returns passwd.ErrCancelled and the terminal mode is restored.
type Terminal struct {
	ctx context.Context
	in  *os.File
	out io.Writer
	r   *bufio.Reader
}

func New(ctx context.Context, in *os.File, out io.Writer) *Terminal {
	return &Terminal{ctx: ctx, in: in, out: out, r: bufio.NewReader(in)}
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(t.out, prompt)
	return t.await(t.readLine, nil)
}

func (t *Terminal) ReadSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(t.out, prompt)
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return t.await(t.readLine, nil)
	}
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}
	s, err := t.await(func() (string, error) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}, func() {
		_ = term.Restore(fd, state)
	})
	// the newline typed by the operator was not echoed
	_, _ = fmt.Fprintln(t.out)
	return s, err
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type result struct {
	s   string
	err error
}

func (t *Terminal) await(read func() (string, error), restore func()) (string, error) {
	if t.ctx.Err() != nil {
		return "", passwd.ErrCancelled
	}
	ch := make(chan result, 1)
	go func() {
		s, err := read()
		ch <- result{s, err}
	}()
	select {
	case r := <-ch:
		if errors.Is(r.err, io.EOF) {
			return "", passwd.ErrCancelled
		}
		return r.s, r.err
	case <-t.ctx.Done():
		if restore != nil {
			restore()
		}
		return "", passwd.ErrCancelled
	}
}
