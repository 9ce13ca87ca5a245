package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/internal/presentation/tui"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	JSON      bool
	SessionID string
	Fresh     bool
	Quiet     bool
}

// Run drives the interactive loop on in/out until the user quits, the
// input ends or ctx is cancelled.
func Run(ctx context.Context, app *App, opts RunOptions, in io.Reader, out io.Writer) error {
	if opts.Fresh && opts.SessionID != "" {
		err := app.Sessions.Delete(ctx, opts.SessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	quiet := opts.Quiet || opts.JSON
	if !quiet {
		tui.PrintBanner(out, numerology.Version)
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(app.Logger),
		runner.WithMode(app.DisplayMode()),
		runner.WithHandler(newHandler(opts.JSON, in, out)),
	}
	if opts.SessionID != "" {
		runnerOpts = append(runnerOpts,
			runner.WithSessionID(opts.SessionID),
			runner.WithStore(app.Sessions.Store()),
		)
		app.Logger.Info("Session active", "session_id", opts.SessionID)
		if !quiet {
			printSystemMessage(out, "Session '%s' active.", opts.SessionID)
		}
	}

	err := runner.New(runnerOpts...).Run(ctx, app.Engine)
	if !quiet && isInterrupted(err) {
		fmt.Fprintln(out)
		printSystemMessage(out, "Interrupted.")
	}
	return handleExecutionError(err)
}

func newHandler(jsonMode bool, in io.Reader, out io.Writer) runner.IOHandler {
	if jsonMode {
		return runner.NewJSONHandler(in, out)
	}
	opts := []runner.TextHandlerOption{runner.WithTextHandlerErrorStyle(tui.ErrorStyle(out))}
	if r := tui.RendererFor(fileOf(out)); r != nil {
		opts = append(opts, runner.WithTextHandlerRenderer(r))
	}
	return runner.NewTextHandler(in, out, opts...)
}
