package run

import (
	"sync"
	"time"

	"rtp/internal/domain"
)

// IDSource hands out strictly increasing run identifiers. Identifiers are
// wall-clock milliseconds, bumped past the previous value when the clock has
// not advanced between calls, so "larger" always means "happened after".
type IDSource struct {
	mu   sync.Mutex
	last domain.RunID
	now  func() time.Time
}

// NewIDSource creates an IDSource backed by the wall clock.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// Next returns the next run identifier.
func (s *IDSource) Next() domain.RunID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.RunID(s.now().UnixMilli())
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
