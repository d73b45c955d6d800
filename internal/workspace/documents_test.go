package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDocument_Line(t *testing.T) {
	doc := NewDocument("/a/b_spec.rb", "first\nsecond line\n"+strings.Repeat("x", 1200)+"\n")

	tests := []struct {
		name     string
		line     int
		width    int
		expected string
		ok       bool
	}{
		{name: "first line", line: 1, width: 999, expected: "first", ok: true},
		{name: "second line", line: 2, width: 999, expected: "second line", ok: true},
		{name: "long line clamped to width", line: 3, width: 999, expected: strings.Repeat("x", 999), ok: true},
		{name: "zero width leaves line whole", line: 3, width: 0, expected: strings.Repeat("x", 1200), ok: true},
		{name: "line zero", line: 0, width: 999, ok: false},
		{name: "line past end", line: 99, width: 999, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := doc.Line(tt.line, tt.width)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && text != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, text)
			}
		})
	}
}

func TestDocument_LineTrimsCarriageReturn(t *testing.T) {
	doc := NewDocument("/a/b_spec.rb", "first\r\nsecond\r\n")
	text, ok := doc.Line(1, 999)
	if !ok {
		t.Fatal("expected line 1 to exist")
	}
	if text != "first" {
		t.Errorf("expected %q, got %q", "first", text)
	}
}

func TestFSStore_Document(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a_spec.rb")
	if err := os.WriteFile(path, []byte("describe 'a' do\nend\n"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	store := FSStore{}

	t.Run("reads existing file", func(t *testing.T) {
		doc, ok := store.Document(path)
		if !ok {
			t.Fatal("expected document to be available")
		}
		if doc.Path != path {
			t.Errorf("expected path %s, got %s", path, doc.Path)
		}
		text, ok := doc.Line(1, 999)
		if !ok || text != "describe 'a' do" {
			t.Errorf("expected first line text, got %q (ok=%v)", text, ok)
		}
	})

	t.Run("missing file is not available", func(t *testing.T) {
		if _, ok := store.Document(filepath.Join(tmpDir, "missing.rb")); ok {
			t.Error("expected missing file to be unavailable")
		}
	})
}

func TestStaticRoot(t *testing.T) {
	t.Run("configured root", func(t *testing.T) {
		root, err := StaticRoot("/proj").Root()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root != "/proj" {
			t.Errorf("expected /proj, got %s", root)
		}
	})

	t.Run("empty root is unknown", func(t *testing.T) {
		if _, err := StaticRoot("").Root(); err != ErrNoWorkspace {
			t.Errorf("expected ErrNoWorkspace, got %v", err)
		}
	})
}
