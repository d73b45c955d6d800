package workspace

import (
	"os"
	"strings"
)

// Document is an immutable snapshot of one file's text.
type Document struct {
	Path  string
	lines []string
}

// NewDocument splits text into lines addressable by 1-indexed line number.
func NewDocument(path, text string) Document {
	return Document{Path: path, lines: strings.Split(text, "\n")}
}

// Line returns the text of the 1-indexed line n, clamped to width runes.
// The second return value is false when the document has no such line.
func (d Document) Line(n, width int) (string, bool) {
	if n < 1 || n > len(d.lines) {
		return "", false
	}
	text := strings.TrimSuffix(d.lines[n-1], "\r")
	if runes := []rune(text); width > 0 && len(runes) > width {
		text = string(runes[:width])
	}
	return text, true
}

// FSStore is a DocumentStore that reads documents straight from disk. It
// stands in for an editor's open-document table when there is none.
type FSStore struct{}

// Document reads the file at absPath. Any read failure means "not available".
func (FSStore) Document(absPath string) (Document, bool) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return Document{}, false
	}
	return NewDocument(absPath, string(data)), true
}
