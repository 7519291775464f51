package script

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 50 * time.Millisecond

// Watcher calls a function whenever a script matched by its patterns
// changes, appears or disappears.
type Watcher struct {
	patterns []string
	debounce time.Duration
	log      *slog.Logger

	paths   []string        // current matches, in Expand order
	tracked map[string]bool // absolute forms of paths
}

// NewWatcher expands patterns and watches the result. A zero debounce uses
// DefaultDebounce.
func NewWatcher(patterns []string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.Default()
	}
	paths, err := Expand(patterns)
	if err != nil {
		return nil, err
	}
	w := &Watcher{patterns: slices.Clone(patterns), debounce: debounce, log: log}
	if err := w.track(paths); err != nil {
		return nil, err
	}
	return w, nil
}

// Paths returns the scripts currently matched.
func (w *Watcher) Paths() []string { return slices.Clone(w.paths) }

func (w *Watcher) track(paths []string) error {
	tracked := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("abs %q: %w", p, err)
		}
		tracked[abs] = true
	}
	w.paths, w.tracked = paths, tracked
	return nil
}

// Run blocks until ctx is done, calling onChange with the current matches
// after each burst of changes. Directories are watched rather than files so
// that editors replacing a file by rename are still seen, and so that new
// files matching a pattern are picked up.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, pat := range w.patterns {
		base, rest := doublestar.SplitPattern(filepath.ToSlash(pat))
		base = filepath.FromSlash(base)
		if strings.Contains(rest, "/") || strings.Contains(rest, "**") {
			err = addTree(fw, base)
		} else {
			err = fw.Add(base)
		}
		if err != nil {
			return fmt.Errorf("watch %s: %w", base, err)
		}
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fw, ev) {
				continue
			}
			w.log.Debug("script changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		case <-timer.C:
			onChange(w.Paths())
		}
	}
}

// addTree watches dir and every directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(p)
	})
}

func (w *Watcher) relevant(fw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	hit := w.tracked[abs]
	if ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return hit
	}

	if ev.Has(fsnotify.Create) {
		if err := addTree(fw, ev.Name); err != nil {
			w.log.Debug("watch new path", "path", ev.Name, "err", err)
		}
	}
	paths, err := Expand(w.patterns)
	if err != nil {
		// A literal script went away; the next run reports it.
		w.log.Debug("re-expand patterns", "err", err)
		return hit
	}
	if slices.Equal(paths, w.paths) {
		return hit
	}
	if err := w.track(paths); err != nil {
		return hit
	}
	w.log.Info("script set changed", "files", len(paths))
	return true
}
