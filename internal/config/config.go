package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectRoot string // absolute project root; "" means unknown
	SearchRoot  string // where the fallback workspace search walks

	// Report settings
	ReportPath string // RSpec JSON report to read; "" means an owned temp file

	// Snapshot settings
	SnapshotFile string
	SnapshotDir  string

	// Reconciliation settings
	Workers          int
	FingerprintWidth int

	// Directories the fallback search skips
	SkipDirs []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectRoot string
	SearchRoot  string
	ReportPath  string
	Workers     int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SearchRoot:       DefaultSearchRoot,
		SnapshotFile:     DefaultSnapshotFile,
		SnapshotDir:      DefaultSnapshotDir,
		Workers:          DefaultWorkers,
		FingerprintWidth: DefaultFingerprintWidth,
	}
	cfg.SkipDirs = make([]string, len(DefaultSkipDirs))
	copy(cfg.SkipDirs, DefaultSkipDirs)
	return cfg
}

// LoadEnv applies overrides from the environment, reading a .env file first
// if one exists next to the search root.
func (c *Config) LoadEnv() {
	// .env file might not exist, that's okay - use environment variables
	envPath := filepath.Join(c.SearchRoot, ".env")
	_ = godotenv.Load(envPath)

	if root := os.Getenv("RTP_PROJECT_ROOT"); root != "" {
		c.ProjectRoot = root
	}
	if report := os.Getenv("RTP_REPORT_PATH"); report != "" {
		c.ReportPath = report
	}
	if width := os.Getenv("RTP_FINGERPRINT_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			c.FingerprintWidth = w
		}
	}
}

// ApplyFlags applies flag overrides on top of defaults and environment.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.ProjectRoot != "" {
		c.ProjectRoot = flags.ProjectRoot
	}
	if flags.SearchRoot != "" {
		c.SearchRoot = flags.SearchRoot
	}
	if flags.ReportPath != "" {
		c.ReportPath = flags.ReportPath
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
}

// GetSnapshotPath returns the absolute path of the run snapshot file so every
// command reads and writes the same file regardless of cwd.
func (c *Config) GetSnapshotPath() string {
	p := filepath.Join(c.SearchRoot, c.SnapshotDir, c.SnapshotFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
