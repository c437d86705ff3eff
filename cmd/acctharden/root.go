package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/acctguard/internal/config"
	"github.com/hnrobert/acctguard/internal/directory"
	"github.com/hnrobert/acctguard/internal/guard"
	"github.com/hnrobert/acctguard/internal/harden"
	"github.com/hnrobert/acctguard/internal/logger"
)

// deps are the host-facing pieces, swapped out in tests.
type deps struct {
	check func() error
	self  func() ([]string, error)
	open  func(directory.Options) (directory.Directory, error)
}

func defaultDeps() deps {
	return deps{check: guard.Check, self: invokingUsers, open: directory.Open}
}

func invokingUsers() ([]string, error) {
	u, err := guard.CurrentUser()
	if err != nil {
		return nil, err
	}
	names := []string{u}
	if s := guard.SudoUser(); s != "" {
		names = append(names, s)
	}
	return names, nil
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "acctharden",
		Short: "Disable every enabled local account not on the allow list",
		Example: `	acctharden --keep alice,bob
	acctharden --config /etc/acctguard.yaml --log-dir /var/log/acctguard
	acctharden --backend files --host-root /host`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.Register(root.Flags(), true)

	root.RunE = func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if err := d.check(); err != nil {
			_, _ = fmt.Fprintln(out, guard.Advice(err))
			return err
		}
		cfg, err := flags.Resolve()
		if err != nil {
			return err
		}
		if err := logger.Init(cfg.LogDir); err != nil {
			logger.Warn("file logging disabled: %v", err)
		}
		defer logger.Close()

		self, err := d.self()
		if err != nil {
			return fmt.Errorf("refusing to run without knowing the invoking user: %w", err)
		}
		dir, err := d.open(directory.Options{Backend: cfg.Backend, HostRoot: cfg.HostRoot, Timeout: cfg.Timeout})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out, "--- Starting User Account Hardening ---")
		r := &harden.Reconciler{Dir: dir, Keep: cfg.Keep, Self: self, Out: out}
		if _, err := r.Run(cmd.Context()); err != nil {
			if errors.Is(err, directory.ErrQuery) {
				_, _ = fmt.Fprintln(out, "\nCould not fetch user list. Exiting to be safe.")
			}
			return err
		}
		return nil
	}
	return root
}

// execute runs the command and maps the outcome to an exit status.
// Per-account failures are not errors here.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}
