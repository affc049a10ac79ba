// hashattack measures how many random guesses it takes to find preimages and
// collisions of a digest truncated to a few low bits.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rbwo1o/Cryptography/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	// stop after the first signal so a second Ctrl-C kills the process
	go func() {
		<-ctx.Done()
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
