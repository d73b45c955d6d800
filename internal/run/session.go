package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"rtp/internal/decoder"
	"rtp/internal/reconciler"
)

// Session watches one report file and runs a full reconciliation pass per
// batch of change events. Change events that arrive while a pass is running
// are coalesced into a single trailing pass (latest contents win), so
// overlapping reads of the same file never race each other.
type Session struct {
	path string
	dec  *decoder.Decoder
	rec  *reconciler.Reconciler
	ids  *IDSource
	sink reconciler.Sink
	log  *slog.Logger
}

// NewSession creates a Session over the report file at path.
func NewSession(path string, dec *decoder.Decoder, rec *reconciler.Reconciler, ids *IDSource, sink reconciler.Sink, log *slog.Logger) *Session {
	return &Session{path: filepath.Clean(path), dec: dec, rec: rec, ids: ids, sink: sink, log: log}
}

// Watch blocks until ctx is cancelled, re-reading the report file every time
// it is written. The report's directory is watched rather than the file
// itself so atomic rename-style rewrites keep triggering events.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// A one-slot kick channel is the coalescing policy: a kick that cannot
	// be queued while a pass is running folds into the one already pending.
	kicks := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				select {
				case kicks <- struct{}{}:
				default:
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watch error", "path", s.path, "error", werr)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-kicks:
			if err := s.Run(ctx); err != nil {
				return err
			}
		}
	}
}

// Run performs one reconciliation pass over the report file's current
// contents. Unreadable or undecodable contents are logged and skipped with
// prior published state left untouched; only a configuration error during
// path resolution aborts the session.
func (s *Session) Run(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn("read report", "path", s.path, "error", err)
		return nil
	}
	output, ok := s.dec.Decode(data)
	if !ok {
		return nil
	}

	runID := s.ids.Next()
	results, err := s.rec.Reconcile(ctx, output, runID)
	if err != nil {
		return fmt.Errorf("reconcile run %d: %w", runID, err)
	}
	s.sink.Publish(results)
	return nil
}
