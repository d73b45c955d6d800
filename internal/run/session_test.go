package run

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"rtp/internal/config"
	"rtp/internal/decoder"
	"rtp/internal/domain"
	"rtp/internal/reconciler"
	"rtp/internal/resolver"
	"rtp/internal/trace"
	"rtp/internal/workspace"
)

type chanSink struct {
	published chan domain.RunResultMap
}

func (s *chanSink) Publish(results domain.RunResultMap) {
	s.published <- results
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, reportPath string, sink reconciler.Sink) *Session {
	t.Helper()
	log := discardLogger()
	cfg := config.New()
	root := t.TempDir()
	res := resolver.New(workspace.StaticRoot(root), workspace.NewScanner(root, nil), log)
	rec := reconciler.New(cfg, res, workspace.FSStore{}, trace.NewRubyMatcher(), log)
	return NewSession(reportPath, decoder.New(log), rec, NewIDSource(), sink, log)
}

const reportJSON = `{"examples":[{"file_path":"./spec/a_spec.rb","line_number":5,"id":"1","status":"passed"}]}`

func TestSession_Run(t *testing.T) {
	tmpDir := t.TempDir()
	reportPath := filepath.Join(tmpDir, "report.json")

	sink := &chanSink{published: make(chan domain.RunResultMap, 4)}
	session := newTestSession(t, reportPath, sink)
	ctx := context.Background()

	t.Run("missing report file is skipped", func(t *testing.T) {
		if err := session.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sink.published) != 0 {
			t.Error("expected no publish for a missing report")
		}
	})

	t.Run("undecodable report is skipped", func(t *testing.T) {
		if err := os.WriteFile(reportPath, []byte(`{"examples":[{`), 0644); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if err := session.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sink.published) != 0 {
			t.Error("expected no publish for an undecodable report")
		}
	})

	t.Run("valid report publishes one map", func(t *testing.T) {
		if err := os.WriteFile(reportPath, []byte(reportJSON), 0644); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if err := session.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		select {
		case results := <-sink.published:
			if len(results) != 1 {
				t.Errorf("expected 1 file result set, got %d", len(results))
			}
		default:
			t.Fatal("expected a published result map")
		}
	})

	t.Run("run ids increase across passes", func(t *testing.T) {
		if err := session.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := session.Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := runIDOf(t, <-sink.published)
		second := runIDOf(t, <-sink.published)
		if second <= first {
			t.Errorf("expected increasing run ids, got %d then %d", first, second)
		}
	})
}

func TestSession_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	reportPath := filepath.Join(tmpDir, "report.json")

	sink := &chanSink{published: make(chan domain.RunResultMap, 16)}
	session := newTestSession(t, reportPath, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- session.Watch(ctx)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(reportPath, []byte(reportJSON), 0644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	select {
	case results := <-sink.published:
		if len(results) != 1 {
			t.Errorf("expected 1 file result set, got %d", len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reconciliation pass after the report was written")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

// blockingSink blocks its first Publish until released, so a test can pile
// up change events while a pass is still running.
type blockingSink struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSink) Publish(results domain.RunResultMap) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()
	if first {
		s.entered <- struct{}{}
		<-s.release
	}
}

func (s *blockingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSession_WatchCoalescesEventsWhileRunning(t *testing.T) {
	tmpDir := t.TempDir()
	reportPath := filepath.Join(tmpDir, "report.json")

	sink := &blockingSink{entered: make(chan struct{}, 1), release: make(chan struct{})}
	session := newTestSession(t, reportPath, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- session.Watch(ctx)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(reportPath, []byte(reportJSON), 0644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	select {
	case <-sink.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("expected the first pass to start")
	}

	// Several writes land while the first pass is still publishing.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(reportPath, []byte(reportJSON), 0644); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
	}
	// Let the change events drain into the pending kick before releasing.
	time.Sleep(200 * time.Millisecond)
	close(sink.release)

	deadline := time.Now().Add(5 * time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := sink.count(); got != 2 {
		t.Fatalf("expected exactly one trailing pass, got %d passes total", got)
	}

	// No further events arrived, so no further passes may run.
	time.Sleep(500 * time.Millisecond)
	if got := sink.count(); got != 2 {
		t.Errorf("expected the trailing pass to be the last, got %d passes total", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func runIDOf(t *testing.T, results domain.RunResultMap) domain.RunID {
	t.Helper()
	for _, set := range results {
		return set.RunID
	}
	t.Fatal("empty result map")
	return 0
}

func TestOutputFile(t *testing.T) {
	output, err := NewOutputFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Path() == "" {
		t.Fatal("expected a non-empty path")
	}
	if _, err := os.Stat(output.Path()); err != nil {
		t.Fatalf("expected report file to exist: %v", err)
	}

	if err := output.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if _, err := os.Stat(output.Path()); !os.IsNotExist(err) {
		t.Error("expected report file to be removed on close")
	}
}
