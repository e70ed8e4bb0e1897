package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/seedrun/internal/app"
	"github.com/specialistvlad/seedrun/internal/cli"
	"github.com/specialistvlad/seedrun/internal/step"
)

// main is the entrypoint for the seedrun application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := interruptContext(os.Stderr)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return app.NewApp(outW, errW, appConfig).Execute(ctx)
}

// interruptContext is cancelled by the first SIGINT or SIGTERM, which stops
// dispatching new cases. A second signal kills running steps and exits immediately.
func interruptContext(errW io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
		case <-ctx.Done():
			return
		}
		fmt.Fprintln(errW, "interrupted: waiting for running cases to finish (press Ctrl-C again to exit now)")
		cancel()
		<-sigs
		step.KillRunning()
		os.Exit(130)
	}()

	return ctx, func() {
		signal.Stop(sigs)
		cancel()
	}
}
