package cli

import "rtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectRoot string
	SearchRoot  string
	ReportPath  string
	Workers     int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectRoot: f.ProjectRoot,
		SearchRoot:  f.SearchRoot,
		ReportPath:  f.ReportPath,
		Workers:     f.Workers,
	}
}
