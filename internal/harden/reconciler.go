// Package harden disables every enabled local account that is not on the
// allow list.
package harden

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hnrobert/acctguard/internal/directory"
	"github.com/hnrobert/acctguard/internal/logger"
)

type Failure struct {
	Account string
	Err     error
}

// Report is the outcome of one run, each slice in snapshot order.
type Report struct {
	Kept     []string
	Disabled []string
	Failed   []Failure
}

// Attempted is the number of Disable calls made.
func (r Report) Attempted() int {
	return len(r.Disabled) + len(r.Failed)
}

type Reconciler struct {
	Dir directory.Directory
	// Keep is the configured allow list.
	Keep []string
	// Self names the invoking user and, under sudo, the operator.
	Self []string
	Out  io.Writer
}

func (r *Reconciler) printf(format string, args ...interface{}) {
	if r.Out != nil {
		_, _ = fmt.Fprintf(r.Out, format, args...)
	}
}

// Run takes one snapshot of the enabled accounts and disables, one at a
// time, those not in the allow set. A failed query aborts before any
// change. A failed disable is recorded and the loop moves on.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	allow := buildAllowSet(r.Keep, r.Self, func(u string) {
		r.printf("[INFO] SAFETY: Automatically adding current user '%s' to the allow list.\n", u)
	})

	r.printf("\n--- Final 'Allow List' (Accounts that will be KEPT enabled) ---\n")
	for _, n := range allow.Sorted() {
		r.printf("  - %s\n", n)
	}
	r.printf("---------------------------------------------------------------\n")

	r.printf("[*] Fetching all currently enabled user accounts...\n")
	snapshot, err := r.Dir.ListEnabled(ctx)
	if err != nil {
		logger.Error("list enabled accounts: %v", err)
		return Report{}, err
	}
	r.printf("    ...Found %d enabled users.\n", len(snapshot))

	var rep Report
	if len(snapshot) == 0 {
		r.printf("\nNo enabled users were found (this is unusual). Nothing to do.\n")
		return rep, nil
	}

	r.printf("\n--- Processing Accounts ---\n")
	for _, name := range snapshot {
		if allow.Contains(name) {
			r.printf("[KEEPING] User '%s' is on the allow list.\n", name)
			rep.Kept = append(rep.Kept, name)
			continue
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("interrupted after %d disable attempt(s)", rep.Attempted())
			return rep, err
		}
		r.printf("  [DISABLING] Attempting to disable: %s\n", name)
		if err := r.Dir.Disable(ctx, name); err != nil {
			r.printf("    [ERROR] Failed to disable user %s: %s\n", name, detail(err))
			logger.Warn("disable %s (%s): %v", name, directory.KindOf(err), err)
			rep.Failed = append(rep.Failed, Failure{Account: name, Err: err})
			continue
		}
		r.printf("    [SUCCESS] User %s has been disabled.\n", name)
		logger.Info("disabled account %s", name)
		rep.Disabled = append(rep.Disabled, name)
	}
	r.printf("-------------------------\n")
	r.printf("\nComplete. Disabled %d non-approved user account(s).\n", len(rep.Disabled))
	if len(rep.Failed) > 0 {
		r.printf("%d of %d disable attempt(s) failed.\n", len(rep.Failed), rep.Attempted())
	}
	return rep, nil
}

func detail(err error) string {
	var de *directory.Error
	if errors.As(err, &de) && de.Detail != "" {
		return de.Detail
	}
	return err.Error()
}
