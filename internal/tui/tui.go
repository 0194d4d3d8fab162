// Package tui is the interactive list view. Every edit goes through the
// model.List operations; the bubbles list only mirrors it.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// listItem adapts a *model.Item to bubbles/list.Item.
type listItem struct {
	item *model.Item
}

func (i listItem) TodoItem() *model.Item { return i.item }

// Implement list.Item interface
func (i listItem) Title() string       { return i.item.String() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box, text := t.Muted.Render(t.BoxUnchecked), it.item.Title()
	if it.item.IsDone() {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// Model is the Bubble Tea model for one list.
type Model struct {
	todos   *model.List
	list    list.Model
	input   textinput.Model
	mode    mode
	inErr   string
	changed bool

	// single-level undo of the last delete
	undoItem  *model.Item
	undoIndex int

	width, height int
}

var (
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	delBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// New builds the view over todos. todos is edited in place.
func New(todos *model.List) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, delBind, undoBind} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{todos: todos, list: l, input: ti, width: 80, height: 24}
	_ = m.refresh() // unfiltered: no command
	return m
}

// refresh mirrors the core list into the bubbles list and header.
// With a filter applied the visible rows are rebuilt by the returned
// command, so callers must hand it back to the runtime.
func (m *Model) refresh() tea.Cmd {
	rows := make([]list.Item, 0, m.todos.Size())
	m.todos.Each(func(it *model.Item) { rows = append(rows, listItem{item: it}) })
	cmd := m.list.SetItems(rows)
	done, pending := m.todos.Stats()
	m.list.Title = ui.Header(m.todos.Name(), done, pending)
	return cmd
}

// reselect moves the cursor to core position i when rows map 1:1.
func (m *Model) reselect(i int) {
	if m.list.FilterState() == list.Unfiltered {
		m.list.Select(i)
	}
}

// selected returns the highlighted item's position in the core list.
func (m Model) selected() (int, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return 0, false
	}
	for i, it := range m.todos.ToSlice() {
		if it == li.item {
			return i, true
		}
	}
	return 0, false
}

// Changed reports whether the list was edited.
func (m Model) Changed() bool { return m.changed }

// Result rebuilds a list from the rows on screen, in order.
func (m Model) Result() (*model.List, error) {
	out := model.New(m.todos.Name())
	for _, row := range m.list.Items() {
		if err := out.AddValue(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != browsing {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc":
		return m, tea.Quit
	case " ":
		if i, ok := m.selected(); ok && m.todos.ToggleAt(i) == nil {
			m.changed = true
			return m, m.refresh()
		}
		return m, nil
	case "d":
		if i, ok := m.selected(); ok {
			if it, err := m.todos.RemoveAt(i); err == nil {
				m.undoItem, m.undoIndex = it, i
				m.changed = true
				return m, m.refresh()
			}
		}
		return m, nil
	case "u":
		if m.undoItem != nil {
			idx := min(max(m.undoIndex, 0), m.todos.Size())
			if m.todos.InsertAt(idx, m.undoItem) == nil {
				m.undoItem = nil
				m.changed = true
				cmd := m.refresh()
				m.reselect(idx)
				return m, cmd
			}
		}
		return m, nil
	case "a":
		m.startInput(adding, "", "New item title...")
		return m, nil
	case "e":
		if i, ok := m.selected(); ok {
			it, _ := m.todos.ItemAt(i)
			m.startInput(editing, it.Title(), "Edit item title...")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, value, placeholder string) {
	m.mode = md
	m.inErr = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.resize()
}

func (m *Model) stopInput() {
	m.mode = browsing
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.stopInput()
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.inErr = "Title cannot be empty"
				return m, nil
			}
			cmd := m.commitInput(title)
			m.stopInput()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitInput(title string) tea.Cmd {
	i, hasSel := m.selected()
	var cmd tea.Cmd
	switch m.mode {
	case adding:
		pos := m.todos.Size()
		if hasSel {
			pos = i + 1
		}
		if m.todos.InsertAt(pos, model.NewItem(title)) != nil {
			return nil
		}
		cmd = m.refresh()
		m.reselect(pos)
	case editing:
		if !hasSel {
			return nil
		}
		old, _ := m.todos.ItemAt(i)
		it := model.NewItem(title)
		if old.IsDone() {
			it.MarkDone()
		}
		if _, err := m.todos.ReplaceAt(i, it); err != nil {
			return nil
		}
		cmd = m.refresh()
	}
	m.changed = true
	return cmd
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 2
	}
	m.list.SetSize(max(m.width-2, 10), max(h, 3))
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != browsing {
		t := ui.Current()
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.mode == editing {
			title = "Edit item"
		}
		if m.inErr != "" {
			title += " - " + t.Error.Render(m.inErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.input.View())
	}
	t := ui.Current()
	return lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1).Render(content)
}

// Run starts the program on the alt screen and returns the edited list and
// whether anything changed.
func Run(todos *model.List, opts ...tea.ProgramOption) (*model.List, bool, error) {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	final, err := tea.NewProgram(New(todos), opts...).Run()
	if err != nil {
		return nil, false, err
	}
	fm, ok := final.(Model)
	if !ok || !fm.Changed() {
		return todos, false, nil
	}
	out, err := fm.Result()
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
