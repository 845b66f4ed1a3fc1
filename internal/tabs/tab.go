// Package tabs holds the selection state of a tabbed code viewer.
//
// A [Set] is an ordered, immutable collection of [Tab]s
// in which exactly one tab is selected at any time.
// Changing the selection produces a new Set;
// the previous Set is never modified.
package tabs

import (
	"errors"
	"fmt"

	"braces.dev/errtrace"
	"go.abhg.dev/codetabs/internal/highlight"
)

var (
	// ErrNoTabs indicates that a Set was requested with zero tabs.
	ErrNoTabs = errors.New("at least one tab is required")

	// ErrMultipleSelected indicates that more than one tab
	// was marked as selected at construction.
	ErrMultipleSelected = errors.New("only one tab may be selected")

	// ErrInvalidIndex is reported by [Set.Lookup]
	// for an index outside the collection.
	ErrInvalidIndex = errors.New("tab index out of range")
)

// Tab is a titled, selectable view of a highlighted code snippet.
type Tab struct {
	// Title is shown in the tab strip.
	Title string

	// ShortTitle is an optional compact form of Title
	// for narrow displays.
	// Falls back to Title if empty.
	ShortTitle string

	// Language the snippet was tokenized as.
	Language string

	// Tokens is the highlighted snippet.
	// Sets derived from one another share Tokens,
	// so they must not be modified after the tab is added to a Set.
	Tokens *highlight.Code

	// Selected reports whether this tab is the visible one.
	Selected bool
}

// CompactTitle returns ShortTitle, or Title if there isn't one.
func (t Tab) CompactTitle() string {
	if t.ShortTitle != "" {
		return t.ShortTitle
	}
	return t.Title
}

// Set is an ordered collection of tabs with exactly one selected.
//
// Tab values are copied between Sets, but their Tokens are shared.
//
// The zero value is not valid. Use [New].
type Set struct {
	tabs     []Tab
	selected int
}

// New builds a Set from the given tabs.
//
// If none of the tabs is marked selected, the first one is.
// It's an error to pass zero tabs, or more than one selected tab.
func New(tabs ...Tab) (Set, error) {
	if len(tabs) == 0 {
		return Set{}, errtrace.Wrap(ErrNoTabs)
	}

	selected := -1
	for i, t := range tabs {
		if !t.Selected {
			continue
		}
		if selected >= 0 {
			return Set{}, errtrace.Wrap(fmt.Errorf("tabs %q and %q: %w",
				tabs[selected].Title, t.Title, ErrMultipleSelected))
		}
		selected = i
	}
	if selected < 0 {
		selected = 0
	}

	return newSet(tabs, selected), nil
}

// newSet copies tabs and marks only tabs[selected] as selected.
func newSet(tabs []Tab, selected int) Set {
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	for i := range out {
		out[i].Selected = i == selected
	}
	return Set{tabs: out, selected: selected}
}

// Len returns the number of tabs.
func (s Set) Len() int { return len(s.tabs) }

// At returns the tab at index i.
// It panics if i is out of range.
func (s Set) At(i int) Tab { return s.tabs[i] }

// Tabs returns a copy of the tabs in this Set.
func (s Set) Tabs() []Tab {
	out := make([]Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Selected returns the selected tab and its index.
func (s Set) Selected() (int, Tab) {
	return s.selected, s.tabs[s.selected]
}

// InRange reports whether i is a valid tab index.
func (s Set) InRange(i int) bool {
	return i >= 0 && i < len(s.tabs)
}

// Select returns a Set with the tab at index i selected,
// and all other tabs unselected.
//
// If i is out of range, Select returns s unchanged.
func (s Set) Select(i int) Set {
	if !s.InRange(i) || i == s.selected {
		return s
	}
	return newSet(s.tabs, i)
}

// Lookup is a strict form of [Select].
// It reports [ErrInvalidIndex] if i is out of range.
func (s Set) Lookup(i int) (Set, error) {
	if !s.InRange(i) {
		return s, errtrace.Wrap(fmt.Errorf("select %d of %d: %w", i, len(s.tabs), ErrInvalidIndex))
	}
	return s.Select(i), nil
}

// SelectTitle selects the first tab whose Title or ShortTitle
// matches the given string.
// If no tab matches, SelectTitle returns s unchanged.
func (s Set) SelectTitle(title string) Set {
	return s.Select(s.IndexOf(title))
}

// IndexOf returns the index of the first tab
// whose Title or ShortTitle is title, or -1.
func (s Set) IndexOf(title string) int {
	for i, t := range s.tabs {
		if t.Title == title || (t.ShortTitle != "" && t.ShortTitle == title) {
			return i
		}
	}
	return -1
}

// Next selects the tab after the current one,
// wrapping around to the first.
func (s Set) Next() Set {
	return s.Select((s.selected + 1) % len(s.tabs))
}

// Prev selects the tab before the current one,
// wrapping around to the last.
func (s Set) Prev() Set {
	n := len(s.tabs)
	return s.Select((s.selected - 1 + n) % n)
}
