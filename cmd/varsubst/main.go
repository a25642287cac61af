// Command varsubst substitutes ${NAME} references in a template.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/randalmurphal/varsubst/internal/app"
	"github.com/randalmurphal/varsubst/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// run encapsulates the program so it can be driven from tests.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.New(in, outW, errW, cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// report prints err and returns the exit code for it.
func report(w io.Writer, err error) int {
	red := color.New(color.FgRed, color.Bold)

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		red.Fprintln(w, "error: "+exitErr.Message)
		return exitErr.Code
	}
	red.Fprintln(w, app.ErrorLine(err))
	return cli.ExitFailure
}
