package script

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves patterns to script paths. Patterns may use ** to cross
// directories. Matches of one pattern are sorted; patterns keep their order
// and a path matched twice is kept at its first position. A pattern
// without glob metacharacters must name an existing file.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		if !doublestar.ValidatePathPattern(pat) {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pat, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pat); err != nil {
				return nil, fmt.Errorf("no scripts match %q: %w", pat, os.ErrNotExist)
			}
			matches = []string{pat}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}
