package commands

import (
	"cqt/internal/discovery"
	"cqt/internal/ui"

	"github.com/spf13/cobra"
)

// FilesCommand handles the files command
type FilesCommand struct {
	workspace *workspace
	filter    *discovery.Filter
	printer   *ui.Printer
}

// newFilesCommand creates a new FilesCommand
func newFilesCommand(ws *workspace, filter *discovery.Filter, printer *ui.Printer) *FilesCommand {
	return &FilesCommand{
		workspace: ws,
		filter:    filter,
		printer:   printer,
	}
}

// Execute runs the command
func (fc *FilesCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source, _, err := fc.workspace.files(ctx)
	if err != nil {
		return err
	}

	// Filter files
	files := fc.filter.FilterByName(source.All(ctx), fc.workspace.config.Flags.NameFilter)
	fc.printer.PrintFileList(files)
	return nil
}
