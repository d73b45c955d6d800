package decoder

import (
	"encoding/json"
	"log/slog"

	"rtp/internal/domain"
)

// Decoder parses raw RSpec JSON report text into a domain.Output.
//
// Report files are written incrementally by an external process and may be
// read mid-write, so a failed decode is an expected condition: Decode logs
// the reject and reports "no usable output" instead of returning an error.
type Decoder struct {
	log *slog.Logger
}

// New creates a Decoder that logs rejects through the given logger.
func New(log *slog.Logger) *Decoder {
	return &Decoder{log: log}
}

// Decode parses text as an RSpec JSON report. The second return value is
// false when the text is not usable output: malformed JSON, a payload without
// an examples sequence, or an example missing a required field. A payload
// with an empty examples sequence is usable and yields zero examples.
func (d *Decoder) Decode(text []byte) (*domain.Output, bool) {
	var payload struct {
		Examples *[]domain.Example `json:"examples"`
	}
	if err := json.Unmarshal(text, &payload); err != nil {
		d.log.Warn("undecodable report", "error", err)
		return nil, false
	}
	if payload.Examples == nil {
		d.log.Warn("report has no examples sequence")
		return nil, false
	}
	for i, ex := range *payload.Examples {
		if err := validate(ex); err != "" {
			d.log.Warn("malformed example", "index", i, "id", ex.ID, "reason", err)
			return nil, false
		}
	}
	return &domain.Output{Examples: *payload.Examples}, true
}

func validate(ex domain.Example) string {
	switch {
	case ex.FilePath == "":
		return "missing file_path"
	case ex.LineNumber < 1:
		return "line_number below 1"
	case ex.ID == "":
		return "missing id"
	case ex.Status == "":
		return "missing status"
	}
	return ""
}
