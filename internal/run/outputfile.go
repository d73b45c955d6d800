package run

import (
	"fmt"
	"os"
)

// OutputFile is the temp file an external test process writes its JSON
// report to. It is an explicitly owned resource: the creator hands Path to
// the process that runs the framework and must Close the file when the
// session ends.
type OutputFile struct {
	path string
}

// NewOutputFile creates an empty report file under the system temp directory.
func NewOutputFile() (*OutputFile, error) {
	f, err := os.CreateTemp("", "rspec-report-*.json")
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close report file: %w", err)
	}
	return &OutputFile{path: f.Name()}, nil
}

// Path returns the report file's location as a plain path string.
func (o *OutputFile) Path() string {
	return o.path
}

// Close removes the report file.
func (o *OutputFile) Close() error {
	return os.Remove(o.path)
}
