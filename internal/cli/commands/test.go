package commands

import (
	"github.com/spf13/cobra"
)

// TestCommand handles the test command
type TestCommand struct {
	workspace *workspace
	deps      runDeps
}

// newTestCommand creates a new TestCommand
func newTestCommand(ws *workspace, deps runDeps) *TestCommand {
	return &TestCommand{workspace: ws, deps: deps}
}

// Execute runs the command
func (tc *TestCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := tc.workspace.pipeline(ctx, tc.deps)
	if err != nil {
		return err
	}
	if err := p.RunTests(ctx); err != nil {
		return err
	}
	tc.deps.printer.Success("Tests passed")
	return nil
}
