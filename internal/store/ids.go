package store

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/todo/internal/model"
)

// Scheme selects how identifiers are allocated.
type Scheme string

const (
	// SchemeCounter numbers items 1, 2, 3... using State.NextID.
	// Ids are never reused within a store, even after removal.
	SchemeCounter Scheme = "counter"
	// SchemeRandom draws a random uint64, redrawn on collision with a live id.
	SchemeRandom Scheme = "random"
	// SchemeUUID uses a random (v4) UUID, redrawn on collision with a live id.
	SchemeUUID Scheme = "uuid"
)

// ParseScheme maps a config value to a Scheme. Empty means counter.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeCounter:
		return SchemeCounter, nil
	case SchemeRandom:
		return SchemeRandom, nil
	case SchemeUUID:
		return SchemeUUID, nil
	}
	return "", fmt.Errorf("unknown id scheme %q (want counter, random or uuid)", s)
}

// IDSource allocates an id for a new item. It returns the id and the
// counter value the next state should carry.
type IDSource interface {
	Next(s model.State) (model.ID, uint64)
}

// IDFunc adapts a function to IDSource.
type IDFunc func(s model.State) (model.ID, uint64)

func (f IDFunc) Next(s model.State) (model.ID, uint64) { return f(s) }

// NewIDSource returns the IDSource for a scheme.
func NewIDSource(scheme Scheme) IDSource {
	switch scheme {
	case SchemeRandom:
		return IDFunc(randomID)
	case SchemeUUID:
		return IDFunc(uuidID)
	default:
		return IDFunc(counterID)
	}
}

func counterID(s model.State) (model.ID, uint64) {
	n := s.NextID
	if n == 0 {
		n = 1
	}
	// Seeded states may already hold numeric ids at or above the counter.
	for s.Has(model.ID(strconv.FormatUint(n, 10))) {
		n++
	}
	return model.ID(strconv.FormatUint(n, 10)), n + 1
}

func randomID(s model.State) (model.ID, uint64) {
	for {
		id := model.ID(strconv.FormatUint(rand.Uint64(), 10))
		if !s.Has(id) {
			return id, s.NextID
		}
	}
}

func uuidID(s model.State) (model.ID, uint64) {
	for {
		id := model.ID(uuid.NewString())
		if !s.Has(id) {
			return id, s.NextID
		}
	}
}
