// Package main provides the entry point for the quickhooks CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/randalmurphal/quickhooks/internal/cli"
	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(qherrors.ExitCode(err))
	}
}
