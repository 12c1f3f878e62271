package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/indaco/hubbump/internal/cli"
	"github.com/indaco/hubbump/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI runs the root command until it finishes or the process is
// interrupted. Cleanup of a module in progress still runs after an interrupt.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New(cli.DefaultDependencies()).Run(ctx, args)
}
