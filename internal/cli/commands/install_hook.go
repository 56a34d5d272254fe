package commands

import (
	"cqt/internal/config"
	"cqt/internal/hooks"
	"cqt/internal/ui"

	"github.com/spf13/cobra"
)

// InstallHookCommand handles the install-hook command
type InstallHookCommand struct {
	config  *config.Config
	printer *ui.Printer
}

// newInstallHookCommand creates a new InstallHookCommand
func newInstallHookCommand(cfg *config.Config, printer *ui.Printer) *InstallHookCommand {
	return &InstallHookCommand{config: cfg, printer: printer}
}

// Execute runs the command
func (ic *InstallHookCommand) Execute(cmd *cobra.Command, args []string) error {
	installer := hooks.NewInstaller(ic.config)
	result, err := installer.Install()
	if err != nil {
		return err
	}

	if result.ScriptCreated {
		ic.printer.Info("Created hook script %s", installer.ScriptPath())
	}
	if result.Linked {
		ic.printer.Success("Linked %s to %s", installer.HookPath(), installer.ScriptPath())
		return nil
	}
	ic.printer.Comment("The pre-commit hook is already installed")
	return nil
}
