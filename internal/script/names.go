package script

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/idilsaglam/todo/internal/store"
)

// kinds maps every accepted intent name (lower case) to its kind.
// The upper-case and camel-case names are the action types older
// front ends emitted.
var kinds = map[string]store.Kind{
	"add":         store.KindAdd,
	"add_todo":    store.KindAdd,
	"todoadded":   store.KindAdd,
	"remove":      store.KindRemove,
	"rm":          store.KindRemove,
	"delete":      store.KindRemove,
	"delete_todo": store.KindRemove,
	"todoremoved": store.KindRemove,
}

// KindOf resolves an intent name. Unknown names return store.KindUnknown.
func KindOf(name string) store.Kind {
	if k, ok := kinds[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return store.KindUnknown
}

// Suggest returns the accepted name closest to name, or "" when nothing is
// within a small edit distance.
func Suggest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	best, bestDist := "", 3
	for cand := range kinds {
		d := levenshtein.ComputeDistance(name, cand)
		if d < bestDist || (d == bestDist && best != "" && cand < best) {
			best, bestDist = cand, d
		}
	}
	return best
}
