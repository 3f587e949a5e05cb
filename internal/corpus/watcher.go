// ABOUTME: Corpus change watcher backed by fsnotify
// ABOUTME: Watches the root and each category; coalesces bursts of events into one callback

package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	pilog "github.com/mauromedda/automate-go/internal/log"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher calls onChange after guides are created, edited, renamed, or removed.
type Watcher struct {
	store    *Store
	onChange func()
	debounce time.Duration
}

// NewWatcher creates a watcher for store. onChange runs on the watcher goroutine.
func NewWatcher(store *Store, onChange func()) *Watcher {
	return &Watcher{store: store, onChange: onChange, debounce: defaultDebounce}
}

// SetDebounce overrides the quiet period used to coalesce events.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled. The root must exist.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.store.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.store.root, err)
	}
	cats, err := w.store.List("")
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c.IsDir {
			if err := fw.Add(filepath.Join(w.store.root, c.Name)); err != nil {
				pilog.Warn("corpus: cannot watch %s: %v", c.Name, err)
			}
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
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			// New category directories join the watch set.
			if ev.Has(fsnotify.Create) && filepath.Dir(ev.Name) == w.store.root {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := fw.Add(ev.Name); err != nil {
						pilog.Warn("corpus: cannot watch %s: %v", ev.Name, err)
					}
				}
			}
			pilog.Debug("corpus: %s %s", ev.Op, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			pilog.Warn("corpus: watch error: %v", err)

		case <-timer.C:
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}
