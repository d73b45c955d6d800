package domain

// Example statuses reported by RSpec's JSON formatter.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

// Example is one reported test case within an RSpec JSON payload.
type Example struct {
	FilePath   string         `json:"file_path"`
	LineNumber int            `json:"line_number"`
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Exception  *ExceptionInfo `json:"exception,omitempty"`
}

// ExceptionInfo carries the failure detail attached to a failed example.
type ExceptionInfo struct {
	Class     string   `json:"class"`
	Message   string   `json:"message"`
	Backtrace []string `json:"backtrace"`
}

// Output is the decoded shape of one RSpec JSON report.
type Output struct {
	Examples []Example `json:"examples"`
}
