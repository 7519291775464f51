package store

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/idilsaglam/todo/internal/model"
)

// Store owns the current snapshot and applies intents one at a time.
// The zero value is not usable; call New.
type Store struct {
	// mu serializes writers. Readers load state without it.
	mu      sync.Mutex
	state   atomic.Pointer[model.State]
	reducer Reducer
	log     *slog.Logger

	// notifyMu is taken before mu is released so subscribers see
	// snapshots in dispatch order.
	notifyMu sync.Mutex

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(model.State)
}

// Option configures a Store.
type Option func(*Store)

// WithReducer replaces the default counter-scheme reducer.
func WithReducer(r Reducer) Option {
	return func(s *Store) { s.reducer = r }
}

// WithInitial seeds the store with a snapshot instead of the empty state.
func WithInitial(st model.State) Option {
	return func(s *Store) {
		st = st.Clone()
		s.state.Store(&st)
	}
}

// WithLogger sets the logger used for transition traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store holding the empty state.
func New(opts ...Option) *Store {
	s := &Store{
		reducer: NewReducer(nil),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	empty := model.Empty()
	s.state.Store(&empty)
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current snapshot. The result is a copy; changing it
// does not affect the store. State never blocks, so subscribers may call it.
func (s *Store) State() model.State {
	return s.state.Load().Clone()
}

// Dispatch applies in and publishes the resulting snapshot.
// Subscribers must not call Dispatch from inside their callback.
func (s *Store) Dispatch(in Intent) {
	s.mu.Lock()
	prev := *s.state.Load()
	next := s.reducer.Reduce(prev, in)
	s.state.Store(&next)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	s.log.Debug("dispatch",
		"intent", kindOf(in),
		"before", prev.Len(),
		"after", next.Len(),
	)
	for _, sub := range subs {
		sub.fn(next.Clone())
	}
}

// Subscribe registers fn to receive every snapshot produced by Dispatch,
// in dispatch order. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(model.State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
			s.subMu.Unlock()
		})
	}
}

// kindOf names in for logging. Nil and typed-nil intents are unknown.
func kindOf(in Intent) Kind {
	switch in := in.(type) {
	case Add:
		return KindAdd
	case *Add:
		if in != nil {
			return KindAdd
		}
	case Remove:
		return KindRemove
	case *Remove:
		if in != nil {
			return KindRemove
		}
	}
	return KindUnknown
}
