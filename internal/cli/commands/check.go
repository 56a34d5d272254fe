package commands

import (
	"errors"
	"log/slog"

	"cqt/internal/logger"
	"cqt/internal/pipeline"
	"cqt/internal/ui"

	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	workspace *workspace
	deps      runDeps
	viewer    ui.Viewer
}

// newCheckCommand creates a new CheckCommand
func newCheckCommand(ws *workspace, deps runDeps, viewer ui.Viewer) *CheckCommand {
	return &CheckCommand{
		workspace: ws,
		deps:      deps,
		viewer:    viewer,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := cc.workspace.pipeline(ctx, cc.deps)
	if err != nil {
		return err
	}

	cc.deps.printer.Banner(AppName, cmd.Root().Version)
	err = p.Run(ctx)

	if errors.Is(err, pipeline.ErrCheckFailed) && cc.workspace.config.Flags.OpenFailures {
		if viewErr := cc.viewer.View(p.Failures()); viewErr != nil {
			logger.Warn(ctx, "cannot open failures viewer", slog.Any("error", viewErr))
		}
	}
	return err
}
