package model

import "slices"

// ID identifies an item. Unique among the items of a single State.
type ID string

// Item is the domain model for a todo entry.
// Items are never edited; a change means a new State.
type Item struct {
	ID   ID     `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// State is one snapshot of the todo list. Insertion order is display order.
//
// NextID carries the counter used by the counter id scheme so that id
// allocation depends only on the snapshot and never on package-level state.
type State struct {
	Items  []Item `json:"items" yaml:"items"`
	NextID uint64 `json:"next_id,omitempty" yaml:"next_id,omitempty"`
}

// Empty returns the initial state.
func Empty() State { return State{Items: []Item{}} }

// Len reports the number of items.
func (s State) Len() int { return len(s.Items) }

// Index returns the position of the item with the given id, or -1.
func (s State) Index(id ID) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
}

// Has reports whether an item with the given id is live.
func (s State) Has(id ID) bool { return s.Index(id) >= 0 }

// Clone returns a copy that shares no backing array with s.
func (s State) Clone() State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, NextID: s.NextID}
}
