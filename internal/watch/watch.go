// Package watch implements the watch-mode external interface: a
// debounced fsnotify watch over every GIR search directory that triggers
// a full regenerate rerun on any change, never an incremental one (§3.3
// SPEC_FULL: the translator's invariants are global — a new duplicate
// symbol or resolved cycle anywhere in the loaded set can change any
// module's output, so there is no safe incremental recompute). Grounded
// on the teacher pack's am/watcher.go debounce-timer pattern,
// generalized from a single config file to a set of directories.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/girsurface/girsurface/internal/diag"
)

// Rerun is called, debounced, after any relevant filesystem change.
type Rerun func() error

// Watcher watches a set of GIR search directories and debounces rapid
// changes into a single Rerun call.
type Watcher struct {
	fsw    *fsnotify.Watcher
	rerun  Rerun
	period time.Duration

	mu    sync.Mutex
	timer *time.Timer
	log   *diag.Diagnostics
}

// New creates a Watcher over dirs, recursively adding every
// subdirectory (fsnotify does not watch recursively on its own).
func New(dirs []string, rerun Rerun) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := addRecursive(fsw, dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		fsw:    fsw,
		rerun:  rerun,
		period: 300 * time.Millisecond,
		log:    diag.ForModule("watch"),
	}, nil
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}

// Run blocks, dispatching a debounced Rerun for every relevant event,
// until the watcher is closed or a fatal watcher error occurs.
func (w *Watcher) Run() error {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.UnresolvedDependency("watch", err.Error())
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".gir") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.period, func() {
		if err := w.rerun(); err != nil {
			w.log.UnresolvedDependency("rerun", err.Error())
		}
	})
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
