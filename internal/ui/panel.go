package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todolist/internal/model"
)

// Where status lines go. Tests swap these.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func OK(msg string) {
	fmt.Fprintln(Stdout, current.Success.Render(current.SymDone+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(Stderr, current.Error.Render("✖ "+msg))
}

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) {
	fmt.Fprintln(Stderr, current.Muted.Render(msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box around lines using the current theme.
func Panel(w io.Writer, lines []string) {
	box := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
}

// ItemLine renders one numbered row: " 1. ☐ Buy milk".
// Titles longer than 80 columns are cut with an ellipsis.
func ItemLine(number int, it *model.Item) string {
	box, style := current.BoxUnchecked, current.Muted
	title := ansi.Truncate(it.Title(), 80, "...")
	if it.IsDone() {
		box, style = current.BoxChecked, current.Success
		title = current.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s",
		current.Muted.Render(fmt.Sprintf("%2d.", number)), style.Render(box), title)
}

// Header is "Title  ✔ d  • p  Total n".
func Header(title string, done, pending int) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		current.Title.Render(title),
		current.Success.Render(current.SymDone), done,
		current.Pending.Render(current.SymPending), pending,
		current.Accent.Render("Total"), done+pending,
	)
}
