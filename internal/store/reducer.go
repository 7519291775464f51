package store

import "github.com/idilsaglam/todo/internal/model"

// Reducer maps a snapshot and an intent to the next snapshot.
// It never fails and never writes to the snapshot it is given.
type Reducer struct {
	ids IDSource
}

// NewReducer returns a Reducer allocating ids from src.
// A nil src uses the counter scheme.
func NewReducer(src IDSource) Reducer {
	if src == nil {
		src = NewIDSource(SchemeCounter)
	}
	return Reducer{ids: src}
}

// Reduce applies in to s. Unrecognized intents return s unchanged.
func (r Reducer) Reduce(s model.State, in Intent) model.State {
	switch in := in.(type) {
	case Add:
		return r.add(s, in.Text)
	case *Add:
		if in != nil {
			return r.add(s, in.Text)
		}
	case Remove:
		return remove(s, in.ID)
	case *Remove:
		if in != nil {
			return remove(s, in.ID)
		}
	}
	return s
}

func (r Reducer) add(s model.State, text string) model.State {
	ids := r.ids
	if ids == nil {
		ids = NewIDSource(SchemeCounter)
	}
	id, next := ids.Next(s)
	items := make([]model.Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	items = append(items, model.Item{ID: id, Text: text})
	return model.State{Items: items, NextID: next}
}

func remove(s model.State, id model.ID) model.State {
	i := s.Index(id)
	if i < 0 {
		return s
	}
	items := make([]model.Item, 0, len(s.Items)-1)
	items = append(items, s.Items[:i]...)
	items = append(items, s.Items[i+1:]...)
	return model.State{Items: items, NextID: s.NextID}
}
