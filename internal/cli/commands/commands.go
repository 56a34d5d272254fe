package commands

import (
	"os"

	"cqt/internal/cli"
	"cqt/internal/config"
	"cqt/internal/discovery"
	"cqt/internal/execution"
	"cqt/internal/logger"
	"cqt/internal/pipeline"
	"cqt/internal/ui"

	"github.com/spf13/cobra"
)

// AppName is printed in the banner of every pipeline run
const AppName = "Code Quality Tool"

// Commands holds all CLI commands
type Commands struct {
	Check       *CheckCommand
	Test        *TestCommand
	Fix         *FixCommand
	Files       *FilesCommand
	InstallHook *InstallHookCommand
}

// runDeps are shared by the commands that run checks
type runDeps struct {
	executor execution.Executor
	printer  *ui.Printer
	progress pipeline.ProgressFunc
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	printer := ui.NewPrinter(os.Stdout)
	viewer := ui.NewFailureViewer()
	ws := newWorkspace(cfg, scanner)

	deps := runDeps{
		executor: execution.NewRunner(),
		printer:  printer,
	}
	if ui.IsTerminal(os.Stderr) {
		deps.progress = func(count int, label string) execution.Progress {
			return ui.NewProgressBar(count, label, os.Stderr)
		}
	}

	return &Commands{
		Check:       newCheckCommand(ws, deps, viewer),
		Test:        newTestCommand(ws, deps),
		Fix:         newFixCommand(ws, deps),
		Files:       newFilesCommand(ws, filter, printer),
		InstallHook: newInstallHookCommand(cfg, printer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultConfigFile, "Settings file, relative to the project directory")
	rootCmd.PersistentFlags().StringVarP(&flags.Dir, "dir", "C", config.DefaultProjectPath, "Project directory (the git working tree)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		flags.Apply(cfg)
		l := logger.New(os.Stderr, flags.Verbose, ui.IsTerminal(os.Stderr))
		cmd.SetContext(logger.Put(cmd.Context(), l))
		return nil
	}

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run every quality check over the staged files",
		Long:  "Lint, style-check and mess-detect the PHP files staged for commit, then run the configured test suites. Stops at the first failing stage.",
		Args:  cobra.NoArgs,
		RunE:  c.Check.Execute,
	}
	checkCmd.Flags().StringVarP(&flags.Path, "path", "p", "", "Check every file below this directory instead of the staged files")
	checkCmd.Flags().StringSliceVar(&flags.Skip, "skip", nil, "Stage to skip (phplint, phpcsfixer, phpcs, phpmd, test), repeatable")
	checkCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop a stage at its first failing file")
	checkCmd.Flags().BoolVar(&flags.AllSuites, "all-suites", false, "Run every test suite even after one fails")
	checkCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run fails")
	rootCmd.AddCommand(checkCmd)

	// Test command
	testCmd := &cobra.Command{
		Use:   "test [SUITE...]",
		Short: "Run the configured test suites",
		Long:  "Run the test suites from the settings file, or only the named ones.",
		RunE:  c.Test.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags.Suites = args
			return nil
		},
	}
	testCmd.Flags().BoolVar(&flags.AllSuites, "all-suites", false, "Run every test suite even after one fails")
	rootCmd.AddCommand(testCmd)

	// Fix command
	fixCmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix the code style of the staged files",
		Long:  "Run php-cs-fixer in write mode over the staged source files. The fixed files are not staged again.",
		Args:  cobra.NoArgs,
		RunE:  c.Fix.Execute,
	}
	fixCmd.Flags().StringVarP(&flags.Path, "path", "p", "", "Fix every file below this directory instead of the staged files")
	rootCmd.AddCommand(fixCmd)

	// Files command
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "List the files a check would run on",
		Long:  "List the added and modified files staged for commit.",
		Args:  cobra.NoArgs,
		RunE:  c.Files.Execute,
	}
	filesCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter files by name pattern (supports wildcards, e.g., '*Controller.php' or '*Payment*')")
	filesCmd.Flags().StringVarP(&flags.Path, "path", "p", "", "List files below this directory instead of the staged files")
	rootCmd.AddCommand(filesCmd)

	// Install hook command
	installCmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install the git pre-commit hook",
		Long:  "Link .git/hooks/pre-commit to the project's hook script, writing the script first when it is missing.",
		Args:  cobra.NoArgs,
		RunE:  c.InstallHook.Execute,
	}
	installCmd.Flags().StringVar(&flags.HookScript, "script", config.DefaultHookScript, "Hook script the git hook links to")
	rootCmd.AddCommand(installCmd)
}
