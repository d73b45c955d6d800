package ui

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"rtp/internal/domain"
)

// failureEntry pairs a failed line result with the file it belongs to.
type failureEntry struct {
	Path   string
	Result domain.LineResult
}

// FailuresViewer displays a run's failed examples in an interactive TUI.
type FailuresViewer struct{}

// NewFailuresViewer creates a new FailuresViewer.
func NewFailuresViewer() *FailuresViewer {
	return &FailuresViewer{}
}

// View displays every failed line result of the run, newest snapshot first
// by file path then line number.
func (fv *FailuresViewer) View(results domain.RunResultMap) error {
	failures := collectFailures(results)
	if len(failures) == 0 {
		color.Green("✓ No failures in the last run!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s:%d", i+1, failure.Path, failure.Result.Line), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(" Failed Examples (%d total) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ", len(failures)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			failure := failures[index]
			statsView.SetText(fv.formatFailureStats(failure))
			detailsView.SetText(fv.formatFailureDetails(failure))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// collectFailures flattens a run map into failed entries sorted by file path
// and line number.
func collectFailures(results domain.RunResultMap) []failureEntry {
	var failures []failureEntry
	for path, set := range results {
		for _, result := range set.Results {
			if result.Status == domain.StatusFailed {
				failures = append(failures, failureEntry{Path: path, Result: result})
			}
		}
	}
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Path != failures[j].Path {
			return failures[i].Path < failures[j].Path
		}
		return failures[i].Result.Line < failures[j].Result.Line
	})
	return failures
}

// formatFailureDetails formats a failed line result using tview color tags.
func (fv *FailuresViewer) formatFailureDetails(failure failureEntry) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	result := failure.Result
	fmt.Fprintf(w, "[red]✗ Example: %s[white]\n\n", result.ID)
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", failure.Path)
	fmt.Fprintf(w, "[cyan]Declared at line: %d[white]\n", result.Line)

	if exc := result.Exception; exc != nil {
		if exc.Line > 0 {
			fmt.Fprintf(w, "[yellow]Raised at: %s:%d[white]\n", failure.Path, exc.Line)
			if exc.Content != "" {
				fmt.Fprintf(w, "[gray]  %s[white]\n", exc.Content)
			}
		}
		fmt.Fprintf(w, "\n[yellow]%s:[white]\n%s\n", exc.Type, exc.Message)
	}

	fmt.Fprintf(w, "\n[gray]Line fingerprint: %s[white]\n", result.Content)

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the stats header for a failed line result.
func (fv *FailuresViewer) formatFailureStats(failure failureEntry) string {
	return fmt.Sprintf("[cyan]location:[white] [yellow]%s[white]:[yellow]%d[white]\n", failure.Path, failure.Result.Line)
}
