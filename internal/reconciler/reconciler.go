package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"rtp/internal/config"
	"rtp/internal/domain"
	"rtp/internal/resolver"
	"rtp/internal/trace"
	"rtp/internal/workspace"
)

// Sink receives one completed RunResultMap per reconciliation pass. The map
// is always fully formed; there is no partial or incremental delivery.
type Sink interface {
	Publish(results domain.RunResultMap)
}

// Progress is notified as individual examples finish reconciling.
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}

// Reconciler maps every reported example onto an absolute file path and a
// line fingerprint, resolving failure backtraces to exact lines where the
// trace names the example's own file.
type Reconciler struct {
	config   *config.Config
	resolver *resolver.Resolver
	docs     workspace.DocumentStore
	matcher  trace.Matcher
	log      *slog.Logger
	progress Progress
}

// New creates a new Reconciler.
func New(cfg *config.Config, res *resolver.Resolver, docs workspace.DocumentStore, matcher trace.Matcher, log *slog.Logger) *Reconciler {
	return &Reconciler{
		config:   cfg,
		resolver: res,
		docs:     docs,
		matcher:  matcher,
		log:      log,
	}
}

// SetProgress sets the progress reporter for subsequent passes.
func (r *Reconciler) SetProgress(progress Progress) {
	r.progress = progress
}

// Reconcile processes every example of output independently and folds the
// results into one RunResultMap keyed by absolute file path. Examples are
// reconciled concurrently; completion order is arbitrary. A root-resolution
// failure aborts the whole pass: the error is returned and no map is built.
func (r *Reconciler) Reconcile(ctx context.Context, output *domain.Output, runID domain.RunID) (domain.RunResultMap, error) {
	results := make(domain.RunResultMap)

	var mu sync.Mutex
	var completed, passed, failed int

	workers := r.config.Workers
	if workers <= 0 {
		workers = 1
	}

	p := pool.New().
		WithErrors().
		WithFirstError().
		WithMaxGoroutines(workers).
		WithContext(ctx)
	for _, ex := range output.Examples {
		ex := ex
		p.Go(func(ctx context.Context) error {
			path, err := r.resolver.Resolve(ctx, ex.FilePath)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", ex.FilePath, err)
			}

			var doc *workspace.Document
			if d, ok := r.docs.Document(path); ok {
				doc = &d
			}
			result := r.lineResult(ex, runID, doc)

			mu.Lock()
			set, ok := results[path]
			if !ok {
				set = &domain.FileResultSet{
					RunID:   runID,
					Results: make(map[string]domain.LineResult),
				}
				results[path] = set
			}
			// Last writer wins on duplicate line keys; one line normally
			// hosts one example.
			set.Results[strconv.Itoa(result.Line)] = result

			completed++
			switch ex.Status {
			case domain.StatusFailed:
				failed++
			case domain.StatusPassed:
				passed++
			}
			if r.progress != nil {
				r.progress.Update(completed, passed, failed)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if r.progress != nil {
		r.progress.Finish()
	}
	return results, nil
}

func (r *Reconciler) lineResult(ex domain.Example, runID domain.RunID, doc *workspace.Document) domain.LineResult {
	result := domain.LineResult{
		ID:      ex.ID,
		RunID:   runID,
		Line:    ex.LineNumber,
		Content: r.fingerprint(doc, ex.LineNumber),
		Status:  ex.Status,
	}
	if ex.Exception != nil {
		resolved := r.resolveException(ex.Exception, doc)
		result.Exception = &resolved
	}
	return result
}

// fingerprint is a comparison-only staleness proxy: the literal text of the
// line when the document is reachable, otherwise a timestamp token. Its only
// contract is "changes whenever content might have changed", so an
// unreachable file (or an empty line) yields a fresh token every pass.
func (r *Reconciler) fingerprint(doc *workspace.Document, line int) string {
	if doc != nil {
		if text, ok := doc.Line(line, r.config.FingerprintWidth); ok && text != "" {
			return text
		}
	}
	return time.Now().Format(time.RFC3339Nano)
}

// resolveException pins the exception to the failing line inside the
// example's own file when a backtrace entry names it. The example's declared
// line points at the test declaration; the matched trace line points at the
// assertion that actually raised.
func (r *Reconciler) resolveException(exc *domain.ExceptionInfo, doc *workspace.Document) domain.ResolvedException {
	resolved := domain.ResolvedException{Type: exc.Class, Message: exc.Message}
	if doc == nil {
		return resolved
	}
	line, ok := r.matcher.Match(exc.Backtrace, doc.Path)
	if !ok {
		return resolved
	}
	resolved.Line = line
	resolved.Content = r.fingerprint(doc, line)
	return resolved
}
