// Command acctharden disables every enabled local account that is not on
// the allow list.
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
