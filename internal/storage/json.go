package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rtp/internal/domain"
)

// Save writes the run's result map to the configured snapshot file.
func (s *JSONStorage) Save(results domain.RunResultMap) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := s.cfg.GetSnapshotPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the last run's result map from the configured snapshot file.
func (s *JSONStorage) Load() (domain.RunResultMap, error) {
	path := s.cfg.GetSnapshotPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var results domain.RunResultMap
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return results, nil
}
