package storage

import (
	"rtp/internal/config"
	"rtp/internal/domain"
)

// Storage persists the most recent run's result map (e.g. for the failures
// viewer). Only the current run is kept; each save replaces the previous one.
type Storage interface {
	Save(results domain.RunResultMap) error
	Load() (domain.RunResultMap, error)
}

// JSONStorage stores the snapshot in a JSON file under the configured path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's snapshot path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
