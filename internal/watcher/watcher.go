// Package watcher re-runs analysis when files under the root change.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// skipDirs mirrors the traverser's pruned directory set; events under these
// never trigger re-analysis.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	".idea":        {},
	".vscode":      {},
	".codescope":   {},
}

// Watcher watches a directory tree and invokes a callback after changes
// settle for the debounce interval.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
	fs       *fsnotify.Watcher
}

// New creates a watcher over root. onChange runs on the watcher goroutine,
// so it must return before the next batch of events can be coalesced.
func New(root string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		fs:       fs,
	}
	if err := w.addRecursively(root); err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var debounceTimer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			// New directories must be watched before their contents change.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursively(event.Name); err != nil {
						log.Printf("watch: failed to add %s: %v", event.Name, err)
					}
				}
			}

			if debounceTimer == nil {
				debounceTimer = time.NewTimer(w.debounce)
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(w.debounce)
			}
			timerCh = debounceTimer.C

		case <-timerCh:
			timerCh = nil
			w.onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, skip := skipDirs[part]; skip {
			return false
		}
	}
	return true
}

func (w *Watcher) addRecursively(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, skip := skipDirs[d.Name()]; skip && path != dir {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}
