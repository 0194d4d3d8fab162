// Package record holds the on-disk shape of a todo list shared by the
// file-backed stores.
package record

import "github.com/idilsaglam/todolist/internal/model"

// Item is the persisted form of a model.Item.
type Item struct {
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// Document is a whole list: its name plus items in order.
type Document struct {
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// FromList snapshots l.
func FromList(l *model.List) Document {
	d := Document{Name: l.Name(), Items: make([]Item, 0, l.Size())}
	l.Each(func(it *model.Item) {
		d.Items = append(d.Items, Item{Title: it.Title(), Done: it.IsDone()})
	})
	return d
}

// List rebuilds a model.List. An empty document name falls back to
// defaultName.
func (d Document) List(defaultName string) *model.List {
	name := d.Name
	if name == "" {
		name = defaultName
	}
	l := model.New(name)
	for _, r := range d.Items {
		it := model.NewItem(r.Title)
		if r.Done {
			it.MarkDone()
		}
		_ = l.Add(it) // never nil
	}
	return l
}
