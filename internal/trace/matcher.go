package trace

import (
	"regexp"
	"strconv"
	"sync"
)

// Matcher locates the backtrace entry pointing into a given file and extracts
// the line number it names. Implementations encode one framework's textual
// trace convention, keeping the reconciler independent of any of them.
type Matcher interface {
	Match(backtrace []string, absPath string) (line int, ok bool)
}

// RubyMatcher understands MRI's convention of "path:line:in `method'" trace
// entries, anchored at the start of the entry. Compiled patterns are cached
// per path, so all examples in one file share a single regexp.
type RubyMatcher struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewRubyMatcher creates a new RubyMatcher.
func NewRubyMatcher() *RubyMatcher {
	return &RubyMatcher{patterns: make(map[string]*regexp.Regexp)}
}

func (m *RubyMatcher) pattern(absPath string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()
	re, ok := m.patterns[absPath]
	if !ok {
		re = regexp.MustCompile("^" + regexp.QuoteMeta(absPath) + `:(\d+):in`)
		m.patterns[absPath] = re
	}
	return re
}

// Match scans backtrace in order and returns the line number of the first
// entry that names absPath. Entries pointing into other files (library code,
// other specs) are skipped.
func (m *RubyMatcher) Match(backtrace []string, absPath string) (int, bool) {
	re := m.pattern(absPath)
	for _, entry := range backtrace {
		sub := re.FindStringSubmatch(entry)
		if sub == nil {
			continue
		}
		line, err := strconv.Atoi(sub[1])
		if err != nil || line < 1 {
			continue
		}
		return line, true
	}
	return 0, false
}
