package commands

import (
	"github.com/spf13/cobra"

	"rtp/internal/config"
	"rtp/internal/storage"
	"rtp/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return err
	}

	return ui.NewFailuresViewer().View(results)
}
