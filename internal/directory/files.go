//go:build !windows

package directory

import (
	"context"
	"errors"
	"os"

	"github.com/hnrobert/acctguard/internal/hostfs"
	"github.com/hnrobert/acctguard/internal/policy"
	"github.com/hnrobert/acctguard/internal/pwhash"
	"github.com/hnrobert/acctguard/internal/usermgr"
)

// Files edits passwd/shadow directly under a host root. It enforces the
// local complexity policy itself since no PAM stack is involved.
type Files struct {
	mgr    *usermgr.Manager
	policy *policy.Policy
	hash   func(string) (string, error)
}

func NewFiles(fs hostfs.FS, p *policy.Policy) *Files {
	return &Files{mgr: usermgr.NewManager(fs), policy: p, hash: pwhash.Hash}
}

func openFiles(opts Options) (Directory, error) {
	return NewFiles(hostfs.New(opts.HostRoot), policy.Default()), nil
}

func (d *Files) ListEnabled(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, opError(OpList, "", err)
	}
	names, err := d.mgr.ListEnabled()
	if err != nil {
		return nil, filesError(OpList, "", err)
	}
	return names, nil
}

func (d *Files) Disable(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return opError(OpDisable, name, err)
	}
	return filesError(OpDisable, name, d.mgr.Lock(name))
}

func (d *Files) SetPassword(ctx context.Context, name, password string) error {
	if err := ctx.Err(); err != nil {
		return opError(OpSetPassword, name, err)
	}
	if err := d.policy.Validate(name, password); err != nil {
		return &Error{Op: OpSetPassword, Account: name, Kind: KindComplexity, Detail: err.Error(), Err: err}
	}
	// reuse check; lookup errors surface from SetHash below
	if cur, err := d.mgr.CurrentHash(name); err == nil && pwhash.Verify(cur, password) == nil {
		return &Error{Op: OpSetPassword, Account: name, Kind: KindComplexity,
			Detail: "password does not meet the complexity requirements: must differ from the current password"}
	}
	h, err := d.hash(password)
	if err != nil {
		return opError(OpSetPassword, name, err)
	}
	return filesError(OpSetPassword, name, d.mgr.SetHash(name, h))
}

func filesError(op, account string, err error) error {
	if err == nil {
		return nil
	}
	kind := Classify(err.Error())
	switch {
	case errors.Is(err, usermgr.ErrUserNotFound), errors.Is(err, usermgr.ErrNoShadowEntry):
		kind = KindNotFound
	case errors.Is(err, os.ErrPermission):
		kind = KindAccessDenied
	}
	return &Error{Op: op, Account: account, Kind: kind, Detail: err.Error(), Err: err}
}
