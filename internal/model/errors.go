package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotItem is matched by every *TypeError.
	ErrNotItem = errors.New("not a todo item")
	// ErrLookup is matched by every *LookupError.
	ErrLookup = errors.New("no item at index")
)

// TypeError reports a value that cannot be added to a List.
type TypeError struct {
	Value any
}

func (e *TypeError) Error() string {
	if e.Value == nil {
		return "add: nil: " + ErrNotItem.Error()
	}
	return fmt.Sprintf("add: %T: %s", e.Value, ErrNotItem)
}

func (e *TypeError) Unwrap() error { return ErrNotItem }

// LookupError reports an index that is missing, not an integer, or outside
// [0, Size).
type LookupError struct {
	Index int
	Raw   string // set when the index came in as text
	Size  int
}

func (e *LookupError) Error() string {
	switch {
	case e.Raw == "" && e.Index < 0 && e.Size < 0:
		return "index missing: " + ErrLookup.Error()
	case e.Raw != "":
		return fmt.Sprintf("index %q: %s", e.Raw, ErrLookup)
	}
	return fmt.Sprintf("index %d out of range [0,%d): %s", e.Index, e.Size, ErrLookup)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// ParseIndex converts a textual 0-based index. Empty or non-integer input
// fails with a *LookupError, the same kind as an out-of-range index.
func ParseIndex(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &LookupError{Index: -1, Size: -1}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &LookupError{Index: -1, Raw: raw, Size: -1}
	}
	return n, nil
}
