package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"cqt/internal/domain"
)

// FailureViewer displays the failures of the current run in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View displays failures in an interactive TUI until the user exits
func (fv *FailureViewer) View(failures []domain.Failure) error {
	if len(failures) == 0 {
		return nil
	}

	// Failures marked as reviewed during this session
	reviewed := make(map[int]bool)

	app := tview.NewApplication()

	// List of failures (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range failures {
		list.AddItem(listItemText(failures[i], i, false), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	// Tool output is arbitrary text, so it is not parsed for color tags
	detailsView := tview.NewTextView().
		SetDynamicColors(false).
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

	// List on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Check Failures (%d total, %d reviewed) | Use ↑↓ to navigate, [yellow]R[white] to mark reviewed, → to view output, ← to go back, Ctrl+C to exit ",
			len(failures), len(reviewed)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index]))
			detailsView.SetText(FormatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					if reviewed[index] {
						delete(reviewed, index)
					} else {
						reviewed[index] = true
					}
					list.SetItemText(index, listItemText(failures[index], index, reviewed[index]), "")
					updateHeader()
				}
				return nil
			}
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
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

	list.SetChangedFunc(func(int, string, string, rune) {
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

// listItemText formats one list entry using tview color tags
func listItemText(failure domain.Failure, index int, reviewed bool) string {
	target := tview.Escape(failure.Target)
	if target == "" {
		target = fmt.Sprintf("Failure %d", index+1)
	}
	if reviewed {
		return fmt.Sprintf("[gray]✓ %d. [%s[] %s[white]", index+1, failure.Stage, target)
	}
	return fmt.Sprintf("[yellow]%d.[white] [%s[] %s", index+1, failure.Stage, target)
}

// formatFailureStats formats the header above the tool output
func formatFailureStats(failure domain.Failure) string {
	return fmt.Sprintf("[cyan]stage:[white] [yellow]%s[white]  [cyan]target:[white] [yellow]%s[white]  [cyan]duration:[white] %s\n",
		tview.Escape(failure.Stage), tview.Escape(failure.Target), failure.Result.Duration.Round(time.Millisecond))
}

// FormatFailureDetails renders the tool output of a failure as plain text
func FormatFailureDetails(failure domain.Failure) string {
	var builder strings.Builder
	if failure.Result.Err != nil {
		fmt.Fprintf(&builder, "✗ %v\n\n", failure.Result.Err)
	}
	if out := strings.TrimSpace(failure.Result.Stdout); out != "" {
		fmt.Fprintf(&builder, "Output:\n%s\n\n", out)
	}
	if out := strings.TrimSpace(failure.Result.Stderr); out != "" {
		fmt.Fprintf(&builder, "Errors:\n%s\n", out)
	}
	if builder.Len() == 0 {
		builder.WriteString("(no output)\n")
	}
	return builder.String()
}
