package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hnrobert/acctguard/internal/config"
	"github.com/hnrobert/acctguard/internal/directory"
	"github.com/hnrobert/acctguard/internal/guard"
	"github.com/hnrobert/acctguard/internal/logger"
	"github.com/hnrobert/acctguard/internal/passwd"
	"github.com/hnrobert/acctguard/internal/prompt"
)

type deps struct {
	check  func() error
	open   func(directory.Options) (directory.Directory, error)
	prompt func(ctx context.Context, out io.Writer) passwd.Prompter
}

func defaultDeps() deps {
	return deps{
		check: guard.Check,
		open:  directory.Open,
		prompt: func(ctx context.Context, out io.Writer) passwd.Prompter {
			return prompt.New(ctx, os.Stdin, out)
		},
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "acctpasswd",
		Short: "Set a new password for a local account",
		Example: `	acctpasswd
	acctpasswd --backend files --host-root /host`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.Register(root.Flags(), false)

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

		dir, err := d.open(directory.Options{Backend: cfg.Backend, HostRoot: cfg.HostRoot, Timeout: cfg.Timeout})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out, "--- Change User Password ---")
		f := &passwd.Flow{Prompt: d.prompt(cmd.Context(), out), Dir: dir, Out: out}
		return f.Run(cmd.Context())
	}
	return root
}

// execute maps every failure, including a rejected password change, to
// exit status 1.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}
