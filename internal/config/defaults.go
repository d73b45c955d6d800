package config

const (
	// DefaultSearchRoot is where the fallback workspace search walks
	DefaultSearchRoot = "."
	// DefaultSnapshotFile is the default run snapshot file name
	DefaultSnapshotFile = "last-run.json"
	// DefaultSnapshotDir is the default snapshot directory
	DefaultSnapshotDir = "storage"
	// DefaultWorkers is the default number of concurrent reconciliation workers
	DefaultWorkers = 4
	// DefaultFingerprintWidth caps how many columns of a line feed its fingerprint
	DefaultFingerprintWidth = 999
)

// DefaultSkipDirs are directories the fallback workspace search never enters
var DefaultSkipDirs = []string{
	"vendor",
	"node_modules",
	"tmp",
	"log",
	"coverage",
	"public",
	"storage",
}
