package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search finds workspace files by name pattern. The path resolver uses it as
// a fallback when a relative report path cannot be anchored to a root.
type Search interface {
	FindFile(ctx context.Context, pattern string) ([]string, error)
}

// Scanner is a Search that walks a directory tree, skipping hidden and
// ignored directories.
type Scanner struct {
	root     string
	skipDirs map[string]bool
}

// NewScanner creates a Scanner over root with the given directories to skip.
func NewScanner(root string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{root: root, skipDirs: skipMap}
}

// FindFile returns the absolute paths of all files matching pattern, in walk
// order. A pattern containing a separator matches as a relative-path suffix
// ("spec/a_spec.rb"); otherwise it matches the base name, with * and ?
// wildcards supported.
func (s *Scanner) FindFile(ctx context.Context, pattern string) ([]string, error) {
	root := filepath.Clean(s.root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("search root does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("search root is not a directory: %s", root)
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchFile(path, d.Name(), pattern) {
			return nil
		}
		abs, aerr := filepath.Abs(path)
		if aerr != nil {
			abs = path
		}
		matches = append(matches, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// matchFile decides whether one walked file matches the search pattern.
func matchFile(path, name, pattern string) bool {
	if strings.ContainsRune(pattern, '/') {
		slashed := filepath.ToSlash(path)
		return slashed == pattern || strings.HasSuffix(slashed, "/"+pattern)
	}
	return matchName(name, pattern)
}

// matchName matches a base name against a pattern with * and ? wildcards.
// Patterns like "*Payment*" also fall back to piecewise substring matching.
func matchName(name, pattern string) bool {
	if pattern == "" {
		return false
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if !strings.Contains(pattern, "?") {
		return name == pattern
	}
	return false
}
