package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fatih/color"

	"rtp/internal/domain"
)

// TerminalSink renders a completed run as per-file, per-line status markers.
// It is one presentation boundary among others; the reconciler only knows it
// accepts a RunResultMap.
type TerminalSink struct{}

// NewTerminalSink creates a new TerminalSink.
func NewTerminalSink() *TerminalSink {
	return &TerminalSink{}
}

// Publish renders one run to stdout.
func (t *TerminalSink) Publish(results domain.RunResultMap) {
	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var passed, failed, pending int
	for _, path := range paths {
		set := results[path]
		color.Cyan("%s", path)

		for _, key := range sortedLineKeys(set) {
			result := set.Results[key]
			switch result.Status {
			case domain.StatusPassed:
				passed++
				color.Green("  ✓ line %d", result.Line)
			case domain.StatusFailed:
				failed++
				color.Red("  ✗ line %d", result.Line)
				if exc := result.Exception; exc != nil {
					if exc.Line > 0 {
						color.Yellow("      %s: %s (raised at line %d)", exc.Type, exc.Message, exc.Line)
					} else {
						color.Yellow("      %s: %s", exc.Type, exc.Message)
					}
				}
			case domain.StatusPending:
				pending++
				color.Yellow("  … line %d", result.Line)
			default:
				pending++
				fmt.Printf("  • line %d (%s)\n", result.Line, result.Status)
			}
		}
		fmt.Println()
	}

	if failed == 0 {
		color.Green("✓ %d example(s) across %d file(s), %d pending", passed, len(paths), pending)
	} else {
		color.Red("✗ %d failed, %d passed, %d pending across %d file(s)", failed, passed, pending, len(paths))
	}
}

// sortedLineKeys orders a result set's keys by their numeric line value.
func sortedLineKeys(set *domain.FileResultSet) []string {
	keys := make([]string, 0, len(set.Results))
	for key := range set.Results {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}
