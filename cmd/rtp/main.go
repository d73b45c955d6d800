package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rtp/internal/cli"
	"rtp/internal/cli/commands"
	"rtp/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "rtp",
		Short:   "RSpec result reconciler",
		Long:    `Interprets RSpec JSON reports and maps every example, and any exception backtrace it carries, onto source-file line positions. Watch a report file for live per-line pass/fail annotations or reconcile a finished report once.`,
		Version: version,
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	level := new(slog.LevelVar)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cobra.OnInitialize(func() {
		if verbose {
			level.Set(slog.LevelDebug)
		}
	})

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, log)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
