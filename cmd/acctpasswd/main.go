// Command acctpasswd sets a new password for one local account.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(defaultDeps()), os.Args[1:])
	stop()
	os.Exit(code)
}
