package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// -------------- rendering helpers --------------

func (a *app) printList(w io.Writer, l *model.List, f listFlags) error {
	view := l
	if f.match != "" {
		m, err := l.Match(f.match)
		if err != nil {
			return err
		}
		view = m
	}
	switch {
	case f.done:
		view = view.AllDone()
	case f.pending:
		view = view.AllNotDone()
	}

	if f.plain {
		// filtered lists are unnamed; keep the header of the source list
		fmt.Fprintln(w, model.New(l.Name(), view.ToSlice()...).String())
		return nil
	}

	// Header + progress
	d, p := l.Stats()
	var lines []string
	lines = append(lines, ui.Header(l.Name(), d, p))
	lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if a.cfg.Group {
		lines = append(lines, groupLines(l, view)...)
	} else {
		lines = append(lines, flatLines(l, view)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(w, lines)
	return nil
}

// flatLines numbers rows by their position in src so the numbers work with
// done/rm even when view is filtered.
func flatLines(src, view *model.List) []string {
	if view.Size() == 0 {
		return []string{ui.Current().Muted.Render("no items")}
	}
	pos := make(map[*model.Item]int, src.Size())
	for i, it := range src.ToSlice() {
		if _, seen := pos[it]; !seen {
			pos[it] = i
		}
	}
	out := make([]string, 0, view.Size())
	view.Each(func(it *model.Item) {
		out = append(out, ui.ItemLine(pos[it]+1, it))
	})
	return out
}

func groupLines(src, view *model.List) []string {
	t := ui.Current()
	section := func(title string, part *model.List) []string {
		lines := []string{t.Accent.Render(title)}
		if part.Size() == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(src, part)...)
	}
	var lines []string
	lines = append(lines, section("Pending", view.AllNotDone())...)
	lines = append(lines, "")
	lines = append(lines, section("Done", view.AllDone())...)
	return lines
}
