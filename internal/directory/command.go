package directory

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hnrobert/acctguard/internal/usercmd"
	"github.com/hnrobert/acctguard/internal/usermgr"
)

// LinuxCommand drives the shadow-utils tools.
type LinuxCommand struct {
	run Commander
	now func() time.Time
}

func NewLinuxCommand(run Commander) *LinuxCommand {
	return &LinuxCommand{run: run, now: time.Now}
}

// ListEnabled reads the local passwd and shadow databases through
// "getent -s files" so LDAP, SSSD and NIS accounts are left out, then
// applies the same enabled rule as the files backend.
func (d *LinuxCommand) ListEnabled(ctx context.Context) ([]string, error) {
	pwOut, err := d.run.Run(ctx, nil, "getent", "-s", "files", "passwd")
	if err != nil {
		return nil, cmdError(OpList, "", "getent", err)
	}
	shOut, err := d.run.Run(ctx, nil, "getent", "-s", "files", "shadow")
	if err != nil {
		return nil, cmdError(OpList, "", "getent", err)
	}
	pw, err := usermgr.ParsePasswd(pwOut)
	if err != nil {
		return nil, opError(OpList, "", err)
	}
	sh, err := usermgr.ParseShadow(shOut)
	if err != nil {
		return nil, opError(OpList, "", err)
	}
	return usermgr.EnabledNames(pw, sh, usermgr.Today(d.now())), nil
}

// Disable locks the password and expires the account, which also stops
// key-based logins.
func (d *LinuxCommand) Disable(ctx context.Context, name string) error {
	if _, err := d.run.Run(ctx, nil, "usermod", "-L", "-e", "1", name); err != nil {
		return cmdError(OpDisable, name, "usermod", err)
	}
	return nil
}

// SetPassword feeds "name:password" to chpasswd on stdin so the password
// never appears in the process list.
func (d *LinuxCommand) SetPassword(ctx context.Context, name, password string) error {
	if strings.ContainsAny(name, ":\n") || strings.Contains(password, "\n") {
		return &Error{Op: OpSetPassword, Account: name, Kind: KindUnknown, Detail: "username or password contains a character chpasswd cannot accept"}
	}
	line := fmt.Sprintf("%s:%s\n", name, password)
	if _, err := d.run.Run(ctx, []byte(line), "chpasswd"); err != nil {
		return cmdError(OpSetPassword, name, "chpasswd", err)
	}
	return nil
}

// WindowsCommand drives PowerShell and net.exe.
type WindowsCommand struct {
	run Commander
}

func NewWindowsCommand(run Commander) *WindowsCommand {
	return &WindowsCommand{run: run}
}

const enabledUsersPS = "Get-LocalUser | Where-Object { $_.Enabled -eq $true } | Select-Object -ExpandProperty Name"

func (d *WindowsCommand) ListEnabled(ctx context.Context) ([]string, error) {
	out, err := d.run.Run(ctx, nil, "powershell", "-NoProfile", "-NonInteractive", "-Command", enabledUsersPS)
	if err != nil {
		return nil, cmdError(OpList, "", "powershell", err)
	}
	var names []string
	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		if n := strings.TrimSpace(s.Text()); n != "" {
			names = append(names, n)
		}
	}
	if err := s.Err(); err != nil {
		return nil, opError(OpList, "", err)
	}
	return names, nil
}

func (d *WindowsCommand) Disable(ctx context.Context, name string) error {
	if _, err := d.run.Run(ctx, nil, "net", "user", name, "/active:no"); err != nil {
		return cmdError(OpDisable, name, "net", err)
	}
	return nil
}

// SetPassword passes the password as a net user argument. "*" would make
// net.exe prompt and a leading "/" would be read as a switch.
func (d *WindowsCommand) SetPassword(ctx context.Context, name, password string) error {
	if password == "*" || strings.HasPrefix(password, "/") || strings.HasPrefix(name, "/") {
		return &Error{Op: OpSetPassword, Account: name, Kind: KindUnknown, Detail: "net user cannot take a password of \"*\" or one starting with \"/\""}
	}
	if _, err := d.run.Run(ctx, nil, "net", "user", name, password); err != nil {
		return cmdError(OpSetPassword, name, "net", err)
	}
	return nil
}

// cmdError classifies a failed command by its own diagnostic text.
func cmdError(op, account, tool string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &Error{Op: op, Account: account, Kind: KindUnknown, Detail: fmt.Sprintf("'%s' command not found", tool), Err: err}
	}
	detail := err.Error()
	var ce *usercmd.Error
	if errors.As(err, &ce) && ce.Detail != "" {
		detail = ce.Detail
	}
	return &Error{Op: op, Account: account, Kind: Classify(detail), Detail: detail, Err: err}
}
