package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// List is an ordered, named collection of items. Insertion order is kept by
// every operation. Filtering returns a new List that shares the same *Item
// values with the receiver.
//
// A List is not safe for concurrent use.
type List struct {
	name  string
	items []*Item
}

// New creates a list, optionally pre-seeded. Nil items are skipped.
func New(name string, items ...*Item) *List {
	l := &List{name: name, items: make([]*Item, 0, len(items))}
	for _, it := range items {
		if it != nil {
			l.items = append(l.items, it)
		}
	}
	return l
}

func (l *List) Name() string { return l.name }
func (l *List) Size() int    { return len(l.items) }

// Add appends it to the end of the list.
func (l *List) Add(it *Item) error {
	if it == nil {
		return &TypeError{}
	}
	l.items = append(l.items, it)
	return nil
}

// AddValue is Add for untyped values. It accepts *Item and ItemHolder;
// anything else (numbers, strings, lists...) fails with a *TypeError and
// leaves the list untouched.
func (l *List) AddValue(v any) error {
	switch x := v.(type) {
	case *Item:
		if x == nil {
			return &TypeError{Value: v}
		}
		return l.Add(x)
	case ItemHolder:
		it := x.TodoItem()
		if it == nil {
			return &TypeError{Value: v}
		}
		return l.Add(it)
	}
	return &TypeError{Value: v}
}

// ToSlice returns a copy of the items in order.
func (l *List) ToSlice() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// First returns the first item, or false when the list is empty.
func (l *List) First() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.items[0], true
}

// Last returns the last item, or false when the list is empty.
func (l *List) Last() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.items[len(l.items)-1], true
}

// Shift removes and returns the first item.
func (l *List) Shift() (*Item, bool) {
	it, ok := l.First()
	if !ok {
		return nil, false
	}
	l.items[0] = nil
	l.items = l.items[1:]
	return it, true
}

// Pop removes and returns the last item.
func (l *List) Pop() (*Item, bool) {
	it, ok := l.Last()
	if !ok {
		return nil, false
	}
	n := len(l.items) - 1
	l.items[n] = nil
	l.items = l.items[:n]
	return it, true
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return &LookupError{Index: i, Size: len(l.items)}
	}
	return nil
}

// ItemAt returns the item at 0-based index i.
func (l *List) ItemAt(i int) (*Item, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	return l.items[i], nil
}

// RemoveAt removes and returns the item at i; later items shift left.
func (l *List) RemoveAt(i int) (*Item, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	it := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return it, nil
}

// InsertAt places it at index i, shifting the rest right. i may equal Size.
func (l *List) InsertAt(i int, it *Item) error {
	if it == nil {
		return &TypeError{}
	}
	if i < 0 || i > len(l.items) {
		return &LookupError{Index: i, Size: len(l.items)}
	}
	l.items = slices.Insert(l.items, i, it)
	return nil
}

// ReplaceAt swaps the item at i for it and returns the previous one.
func (l *List) ReplaceAt(i int, it *Item) (*Item, error) {
	if it == nil {
		return nil, &TypeError{}
	}
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	old := l.items[i]
	l.items[i] = it
	return old, nil
}

func (l *List) MarkDoneAt(i int) error {
	it, err := l.ItemAt(i)
	if err != nil {
		return err
	}
	it.MarkDone()
	return nil
}

func (l *List) MarkUndoneAt(i int) error {
	it, err := l.ItemAt(i)
	if err != nil {
		return err
	}
	it.MarkUndone()
	return nil
}

func (l *List) ToggleAt(i int) error {
	it, err := l.ItemAt(i)
	if err != nil {
		return err
	}
	it.Toggle()
	return nil
}

func (l *List) MarkAllDone() {
	for _, it := range l.items {
		it.MarkDone()
	}
}

func (l *List) MarkAllUndone() {
	for _, it := range l.items {
		it.MarkUndone()
	}
}

// IsDone reports whether every item is done. An empty list is done.
func (l *List) IsDone() bool {
	for _, it := range l.items {
		if !it.IsDone() {
			return false
		}
	}
	return true
}

// Each calls fn for every item in order.
func (l *List) Each(fn func(*Item)) {
	for _, it := range l.items {
		fn(it)
	}
}

// Filter returns a new unnamed list holding the items pred accepts.
func (l *List) Filter(pred func(*Item) bool) *List {
	out := &List{items: make([]*Item, 0, len(l.items))}
	for _, it := range l.items {
		if pred(it) {
			out.items = append(out.items, it)
		}
	}
	return out
}

// FindByTitle returns the first item whose title equals title.
func (l *List) FindByTitle(title string) (*Item, bool) {
	for _, it := range l.items {
		if it.Title() == title {
			return it, true
		}
	}
	return nil, false
}

func (l *List) AllDone() *List {
	return l.Filter(func(it *Item) bool { return it.IsDone() })
}

func (l *List) AllNotDone() *List {
	return l.Filter(func(it *Item) bool { return !it.IsDone() })
}

// MarkDone marks the first item titled title as done. Unknown titles are
// ignored.
func (l *List) MarkDone(title string) {
	if it, ok := l.FindByTitle(title); ok {
		it.MarkDone()
	}
}

// Match filters by a glob pattern on titles ("Buy *", "*gym*", "{a,b}*").
func (l *List) Match(pattern string) (*List, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	return l.Filter(func(it *Item) bool { return g.Match(it.Title()) }), nil
}

// Stats counts done and pending items.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.items {
		if it.IsDone() {
			done++
		} else {
			pending++
		}
	}
	return
}

// String renders a "---- name ----" header followed by one line per item.
func (l *List) String() string {
	var b strings.Builder
	b.WriteString("---- ")
	b.WriteString(l.name)
	b.WriteString(" ----")
	for _, it := range l.items {
		b.WriteByte('\n')
		b.WriteString(it.String())
	}
	return b.String()
}
