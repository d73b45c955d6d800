package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"rtp/internal/workspace"
)

// Resolver turns framework-relative report paths into absolute,
// editor-addressable ones. RSpec reports paths relative to its own working
// directory, which may not be the workspace the results are rendered in.
type Resolver struct {
	roots  workspace.RootProvider
	search workspace.Search
	log    *slog.Logger
}

// New creates a Resolver over the given root provider and fallback search.
func New(roots workspace.RootProvider, search workspace.Search, log *slog.Logger) *Resolver {
	return &Resolver{roots: roots, search: search, log: log}
}

// Resolve maps path to an absolute path. Paths without a leading "." marker
// are returned unchanged. Relative paths are joined onto the project root;
// when no root is known, Resolve falls back to a workspace-wide search for
// the path's tail and takes the first match. If the search finds nothing the
// literal input path is returned unchanged. Root-provider failures other
// than an unknown root are configuration errors and propagate to the caller.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, error) {
	if !strings.HasPrefix(path, ".") {
		return path, nil
	}

	root, err := r.roots.Root()
	if err == nil {
		return filepath.Join(root, path), nil
	}
	if !errors.Is(err, workspace.ErrNoWorkspace) {
		return "", fmt.Errorf("resolve project root: %w", err)
	}

	// No root to substitute; search the workspace for the path's tail.
	// First match wins, which is not guaranteed correct when several
	// candidate files share a name.
	tail := strings.TrimPrefix(strings.TrimPrefix(path, "."), "/")
	matches, serr := r.search.FindFile(ctx, tail)
	if serr != nil {
		r.log.Warn("workspace search failed", "pattern", tail, "error", serr)
		return path, nil
	}
	if len(matches) == 0 {
		r.log.Warn("no workspace file matches report path", "pattern", tail)
		return path, nil
	}
	if len(matches) > 1 {
		r.log.Debug("multiple workspace files match report path", "pattern", tail, "count", len(matches))
	}
	return matches[0], nil
}
