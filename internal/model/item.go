package model

// Item is the domain model for a todo entry.
// The title is fixed at construction; only the done flag moves.
type Item struct {
	title string
	done  bool
}

// NewItem returns an undone item with the given title.
func NewItem(title string) *Item {
	return &Item{title: title}
}

func (it *Item) Title() string { return it.title }
func (it *Item) IsDone() bool  { return it.done }

func (it *Item) MarkDone()   { it.done = true }
func (it *Item) MarkUndone() { it.done = false }

// Toggle flips the done flag.
func (it *Item) Toggle() { it.done = !it.done }

// String renders the item as "[X] title" or "[ ] title".
func (it *Item) String() string {
	box := "[ ]"
	if it.done {
		box = "[X]"
	}
	return box + " " + it.title
}

// ItemHolder is implemented by values that wrap an Item, such as UI rows.
type ItemHolder interface {
	TodoItem() *Item
}
