package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
	"github.com/harborwave/harbor-wave/internal/ui"
)

// Execute runs the CLI and returns the process exit code. SIGINT and
// SIGTERM cancel in-flight provider calls.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Root().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, handlers.ErrNoCommand) {
		ui.NewStdPrinter().Error("%v", err)
	}
	return handlers.ExitCode(err)
}
