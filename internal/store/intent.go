package store

import "github.com/idilsaglam/todo/internal/model"

// Kind names an intent.
type Kind string

const (
	KindAdd     Kind = "add"
	KindRemove  Kind = "remove"
	KindUnknown Kind = "unknown"
)

// Intent is a requested state change. The reducer recognizes Add and
// Remove; anything else leaves the state as it is.
type Intent interface {
	Kind() Kind
}

// Add appends a new item with a fresh id.
type Add struct {
	Text string
}

// Remove drops the item with the given id, if present.
type Remove struct {
	ID model.ID
}

// Unknown is an intent whose type was not recognized when it was decoded.
// Type is the name as written, kept for diagnostics.
type Unknown struct {
	Type string
}

func (Add) Kind() Kind     { return KindAdd }
func (Remove) Kind() Kind  { return KindRemove }
func (Unknown) Kind() Kind { return KindUnknown }
