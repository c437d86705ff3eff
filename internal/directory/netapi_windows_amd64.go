package directory

import (
	"context"
	"fmt"

	wapi "github.com/iamacarpet/go-win64api"
	"github.com/pkg/errors"
)

const defaultBackend = "netapi"

func init() {
	backends["netapi"] = func(Options) (Directory, error) { return NetAPI{}, nil }
}

// NetAPI talks to the local SAM through netapi32.
type NetAPI struct{}

func (NetAPI) ListEnabled(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, opError(OpList, "", err)
	}
	users, err := wapi.ListLocalUsers()
	if err != nil {
		return nil, netError(OpList, "", errors.Wrap(err, "NetUserEnum"))
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		if u.IsEnabled {
			names = append(names, u.Username)
		}
	}
	return names, nil
}

func (NetAPI) Disable(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return opError(OpDisable, name, err)
	}
	ok, err := wapi.UserDisabled(name, true)
	if err != nil {
		return netError(OpDisable, name, errors.Wrapf(err, "error disabling %s", name))
	}
	if !ok {
		return netError(OpDisable, name, fmt.Errorf("NetUserSetInfo refused to disable %s", name))
	}
	return nil
}

func (NetAPI) SetPassword(ctx context.Context, name, password string) error {
	if err := ctx.Err(); err != nil {
		return opError(OpSetPassword, name, err)
	}
	ok, err := wapi.ChangePassword(name, password)
	if err != nil {
		return netError(OpSetPassword, name, errors.Wrapf(err, "error setting password for %s", name))
	}
	if !ok {
		return netError(OpSetPassword, name, fmt.Errorf("NetUserSetInfo refused the password for %s", name))
	}
	return nil
}

func netError(op, account string, err error) error {
	kind := classifyNetAPI(errors.Cause(err).Error())
	return &Error{Op: op, Account: account, Kind: kind, Detail: err.Error(), Err: err}
}
