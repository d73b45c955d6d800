package decoder

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		ok       bool
		examples int
	}{
		{
			name: "valid report with one example",
			text: `{"examples":[{"file_path":"./spec/a_spec.rb","line_number":5,"id":"./spec/a_spec.rb[1:1]","status":"passed"}]}`,
			ok:   true, examples: 1,
		},
		{
			name: "valid report with exception",
			text: `{"examples":[{"file_path":"./spec/a_spec.rb","line_number":5,"id":"1","status":"failed","exception":{"class":"RuntimeError","message":"boom","backtrace":["/proj/spec/a_spec.rb:7:in 'block'"]}}]}`,
			ok:   true, examples: 1,
		},
		{
			name: "empty but valid",
			text: `{"examples":[]}`,
			ok:   true, examples: 0,
		},
		{
			name: "extra unknown fields are ignored",
			text: `{"version":"3.12","examples":[{"file_path":"a.rb","line_number":1,"id":"1","status":"passed","run_time":0.01}],"summary":{}}`,
			ok:   true, examples: 1,
		},
		{
			name: "truncated JSON",
			text: `{"examples":[{"file_path":"./spec/a_s`,
			ok:   false,
		},
		{
			name: "not JSON at all",
			text: `Finished in 0.01 seconds`,
			ok:   false,
		},
		{
			name: "missing examples sequence",
			text: `{"summary":{"example_count":3}}`,
			ok:   false,
		},
		{
			name: "examples is not a sequence",
			text: `{"examples":42}`,
			ok:   false,
		},
		{
			name: "null payload",
			text: `null`,
			ok:   false,
		},
		{
			name: "example missing file_path",
			text: `{"examples":[{"line_number":5,"id":"1","status":"passed"}]}`,
			ok:   false,
		},
		{
			name: "example with line_number below 1",
			text: `{"examples":[{"file_path":"a.rb","line_number":0,"id":"1","status":"passed"}]}`,
			ok:   false,
		},
		{
			name: "example missing id",
			text: `{"examples":[{"file_path":"a.rb","line_number":5,"status":"passed"}]}`,
			ok:   false,
		},
		{
			name: "example missing status",
			text: `{"examples":[{"file_path":"a.rb","line_number":5,"id":"1"}]}`,
			ok:   false,
		},
	}

	d := New(discardLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, ok := d.Decode([]byte(tt.text))
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !tt.ok {
				if output != nil {
					t.Errorf("expected nil output on reject, got %v", output)
				}
				return
			}
			if len(output.Examples) != tt.examples {
				t.Errorf("expected %d examples, got %d", tt.examples, len(output.Examples))
			}
		})
	}
}

func TestDecoder_DecodeFields(t *testing.T) {
	d := New(discardLogger())

	text := `{"examples":[{"file_path":"./spec/a_spec.rb","line_number":5,"id":"1","status":"failed","exception":{"class":"RuntimeError","message":"boom","backtrace":["/proj/spec/a_spec.rb:7:in 'block'","/gems/rspec/core.rb:9:in 'run'"]}}]}`
	output, ok := d.Decode([]byte(text))
	if !ok {
		t.Fatal("expected usable output")
	}

	ex := output.Examples[0]
	if ex.FilePath != "./spec/a_spec.rb" {
		t.Errorf("expected file_path ./spec/a_spec.rb, got %s", ex.FilePath)
	}
	if ex.LineNumber != 5 {
		t.Errorf("expected line_number 5, got %d", ex.LineNumber)
	}
	if ex.Exception == nil {
		t.Fatal("expected exception to be decoded")
	}
	if ex.Exception.Class != "RuntimeError" {
		t.Errorf("expected class RuntimeError, got %s", ex.Exception.Class)
	}
	if len(ex.Exception.Backtrace) != 2 {
		t.Errorf("expected 2 backtrace entries, got %d", len(ex.Exception.Backtrace))
	}
}
