package workspace

import "errors"

// ErrNoWorkspace signals that no project root is known to anchor relative
// report paths. Callers recover from it by searching the workspace instead.
var ErrNoWorkspace = errors.New("workspace: no project root")

// RootProvider yields the absolute project root used to substitute the
// relative-path marker in framework-reported paths.
type RootProvider interface {
	Root() (string, error)
}

// StaticRoot is a RootProvider backed by a fixed path. An empty value means
// the root is unknown.
type StaticRoot string

// Root returns the configured root, or ErrNoWorkspace when none is set.
func (r StaticRoot) Root() (string, error) {
	if r == "" {
		return "", ErrNoWorkspace
	}
	return string(r), nil
}

// DocumentStore exposes the host's view of file contents. A file the store
// does not know about is simply "not available" — never an error.
type DocumentStore interface {
	Document(absPath string) (Document, bool)
}
