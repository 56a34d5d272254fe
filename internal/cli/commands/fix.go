package commands

import (
	"github.com/spf13/cobra"
)

// FixCommand handles the fix command
type FixCommand struct {
	workspace *workspace
	deps      runDeps
}

// newFixCommand creates a new FixCommand
func newFixCommand(ws *workspace, deps runDeps) *FixCommand {
	return &FixCommand{workspace: ws, deps: deps}
}

// Execute runs the command
func (fc *FixCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := fc.workspace.pipeline(ctx, fc.deps)
	if err != nil {
		return err
	}
	return p.Fix(ctx)
}
