package commands

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rtp/internal/config"
	"rtp/internal/domain"
	"rtp/internal/reconciler"
	"rtp/internal/run"
	"rtp/internal/storage"
	"rtp/internal/ui"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	config  *config.Config
	storage storage.Storage
	log     *slog.Logger
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, st storage.Storage, log *slog.Logger) *WatchCommand {
	return &WatchCommand{
		config:  cfg,
		storage: st,
		log:     log,
	}
}

// Execute runs the command
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reportPath := wc.config.ReportPath
	if reportPath == "" {
		output, err := run.NewOutputFile()
		if err != nil {
			return err
		}
		defer output.Close()
		reportPath = output.Path()
	}

	color.Cyan("Watching report file: %s", reportPath)
	color.White("Point your test process at it and press Ctrl+C to stop.")

	p := newPipeline(wc.config, wc.log)
	sink := &snapshotSink{next: ui.NewTerminalSink(), storage: wc.storage, log: wc.log}
	session := run.NewSession(reportPath, p.decoder, p.reconciler, p.ids, sink, wc.log)

	if err := session.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// snapshotSink persists each published run before forwarding it.
type snapshotSink struct {
	next    reconciler.Sink
	storage storage.Storage
	log     *slog.Logger
}

func (s *snapshotSink) Publish(results domain.RunResultMap) {
	if err := s.storage.Save(results); err != nil {
		s.log.Warn("save run snapshot", "error", err)
	}
	s.next.Publish(results)
}
