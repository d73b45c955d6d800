package domain

// RunID distinguishes one reconciliation pass from another. Values are
// strictly increasing, so a larger RunID happened after a smaller one.
type RunID int64

// ResolvedException is an example's failure detail pinned, when the backtrace
// allows it, to the line inside the resolved file where the exception surfaced.
// Line and Content are zero when no backtrace entry named the resolved file.
type ResolvedException struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Content string `json:"content,omitempty"`
}

// LineResult annotates one source line with the outcome of the example
// declared there. Content is the line's fingerprint: genuine line text, or a
// timestamp token when the file was unreachable at reconciliation time.
type LineResult struct {
	ID        string             `json:"id"`
	RunID     RunID              `json:"run_id"`
	Line      int                `json:"line"`
	Content   string             `json:"content"`
	Status    string             `json:"status"`
	Exception *ResolvedException `json:"exception,omitempty"`
}

// FileResultSet holds every line result produced for one file during a run,
// keyed by the line number formatted as a string.
type FileResultSet struct {
	RunID      RunID                 `json:"run_id"`
	RunPending bool                  `json:"run_pending"`
	Results    map[string]LineResult `json:"results"`
}

// RunResultMap maps absolute file paths to their result sets. One map is the
// complete product of a reconciliation pass and replaces any prior state for
// the files it covers.
type RunResultMap map[string]*FileResultSet
