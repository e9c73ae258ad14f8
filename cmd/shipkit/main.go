package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/shipkit/shipkit-cli/pkg/cli"
	"github.com/shipkit/shipkit-cli/pkg/console"
)

// Build-time variables.
var (
	version = "dev"
)

func main() {
	cli.SetVersionInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
