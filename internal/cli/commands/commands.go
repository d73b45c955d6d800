package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"rtp/internal/cli"
	"rtp/internal/config"
	"rtp/internal/decoder"
	"rtp/internal/reconciler"
	"rtp/internal/resolver"
	"rtp/internal/run"
	"rtp/internal/storage"
	"rtp/internal/trace"
	"rtp/internal/workspace"
)

// Commands holds all CLI commands
type Commands struct {
	Reconcile *ReconcileCommand
	Watch     *WatchCommand
	Failures  *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *slog.Logger) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)

	return &Commands{
		Reconcile: NewReconcileCommand(cfg, jsonStorage, log),
		Watch:     NewWatchCommand(cfg, jsonStorage, log),
		Failures:  NewFailuresCommand(cfg, jsonStorage),
	}
}

// pipeline bundles the collaborators one reconciliation pass needs. It is
// built after flag parsing so the flags' project root and search root take
// effect.
type pipeline struct {
	decoder    *decoder.Decoder
	reconciler *reconciler.Reconciler
	ids        *run.IDSource
}

func newPipeline(cfg *config.Config, log *slog.Logger) *pipeline {
	roots := workspace.StaticRoot(cfg.ProjectRoot)
	search := workspace.NewScanner(cfg.SearchRoot, cfg.SkipDirs)
	res := resolver.New(roots, search, log)
	rec := reconciler.New(cfg, res, workspace.FSStore{}, trace.NewRubyMatcher(), log)

	return &pipeline{
		decoder:    decoder.New(log),
		reconciler: rec,
		ids:        run.NewIDSource(),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.LoadEnv()
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Reconcile command
	reconcileCmd := &cobra.Command{
		Use:     "reconcile",
		Short:   "Reconcile an RSpec JSON report once",
		Long:    "Read an RSpec JSON report, map every example onto source-file lines and render the per-line results",
		RunE:    c.Reconcile.Execute,
		PreRunE: applyFlags,
	}
	reconcileCmd.Flags().StringVarP(&flags.ReportPath, "report", "r", "", "Path to the RSpec JSON report file")
	reconcileCmd.Flags().StringVarP(&flags.ProjectRoot, "project-root", "p", "", "Absolute project root used to anchor relative report paths")
	reconcileCmd.Flags().StringVarP(&flags.SearchRoot, "search-root", "s", "", "Directory the fallback file search walks (default \".\")")
	reconcileCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of concurrent reconciliation workers")
	rootCmd.AddCommand(reconcileCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Watch a report file and reconcile on every change",
		Long:    "Watch an RSpec JSON report file (or an owned temp file) and run a reconciliation pass per batch of change events",
		RunE:    c.Watch.Execute,
		PreRunE: applyFlags,
	}
	watchCmd.Flags().StringVarP(&flags.ReportPath, "report", "r", "", "Path to the RSpec JSON report file (default: an owned temp file, printed on start)")
	watchCmd.Flags().StringVarP(&flags.ProjectRoot, "project-root", "p", "", "Absolute project root used to anchor relative report paths")
	watchCmd.Flags().StringVarP(&flags.SearchRoot, "search-root", "s", "", "Directory the fallback file search walks (default \".\")")
	watchCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of concurrent reconciliation workers")
	rootCmd.AddCommand(watchCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View the last run's failures interactively",
		Long:    "Display the failed examples of the last reconciled run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().StringVarP(&flags.SearchRoot, "search-root", "s", "", "Directory holding the run snapshot (default \".\")")
	rootCmd.AddCommand(failuresCmd)
}
