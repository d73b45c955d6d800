package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rtp/internal/config"
	"rtp/internal/storage"
	"rtp/internal/ui"
)

// ReconcileCommand handles the reconcile command
type ReconcileCommand struct {
	config  *config.Config
	storage storage.Storage
	log     *slog.Logger
}

// NewReconcileCommand creates a new ReconcileCommand
func NewReconcileCommand(cfg *config.Config, st storage.Storage, log *slog.Logger) *ReconcileCommand {
	return &ReconcileCommand{
		config:  cfg,
		storage: st,
		log:     log,
	}
}

// Execute runs the command
func (rc *ReconcileCommand) Execute(cmd *cobra.Command, args []string) error {
	if rc.config.ReportPath == "" {
		return fmt.Errorf("no report file given (use --report or RTP_REPORT_PATH)")
	}

	data, err := os.ReadFile(rc.config.ReportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	p := newPipeline(rc.config, rc.log)
	output, ok := p.decoder.Decode(data)
	if !ok {
		color.Yellow("Report contains no usable output")
		return nil
	}
	if len(output.Examples) == 0 {
		color.Yellow("Report contains no examples")
		return nil
	}

	p.reconciler.SetProgress(ui.NewProgressBar(len(output.Examples)))

	results, err := p.reconciler.Reconcile(cmd.Context(), output, p.ids.Next())
	if err != nil {
		return err
	}

	ui.NewTerminalSink().Publish(results)

	if err := rc.storage.Save(results); err != nil {
		return fmt.Errorf("failed to save run snapshot: %w", err)
	}
	return nil
}
