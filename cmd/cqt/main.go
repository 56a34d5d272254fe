package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cqt/internal/cli"
	"cqt/internal/cli/commands"
	"cqt/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "cqt",
		Short:         "Pre-commit code quality gatekeeper for PHP projects",
		Long:          `Runs PHP lint, php-cs-fixer, PHP_CodeSniffer, PHP Mess Detector and the atoum test suites over the files staged for commit, and rejects the commit at the first failing stage.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
