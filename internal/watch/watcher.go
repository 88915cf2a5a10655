// Package watch reloads solver dictionaries when their files change on disk.
//
// The parent directory of each dictionary is watched rather than the file itself, so
// editors and tools that replace the file by rename are still noticed. Bursts of events
// for one file are collapsed into a single reload after a quiet period.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/license-plate-game/internal/logging"
)

// DefaultDebounce is the quiet period used when New is given zero.
const DefaultDebounce = 250 * time.Millisecond

// Reloader re-reads the dictionary of a named solver.
type Reloader interface {
	ReloadDictionary(name string) error
}

// Watcher maps dictionary files to the solvers reading them.
type Watcher struct {
	fs       *fsnotify.Watcher
	reloader Reloader
	debounce time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	targets map[string]map[string]struct{} // dictionary path -> solver names
	dirs    map[string]struct{}
	timers  map[string]*time.Timer
	closed  bool
}

// New creates a watcher that calls reloader after debounce of quiet per changed file.
func New(reloader Reloader, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fs,
		reloader: reloader,
		debounce: debounce,
		logger:   logging.GetLogger("watch"),
		targets:  make(map[string]map[string]struct{}),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
	}, nil
}

func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}

// Add starts watching dictPath on behalf of solverName.
func (w *Watcher) Add(solverName, dictPath string) error {
	path := normalize(dictPath)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	if w.targets[path] == nil {
		w.targets[path] = make(map[string]struct{})
	}
	w.targets[path][solverName] = struct{}{}

	w.logger.Info().Str("solver", solverName).Str("path", path).Msg("Watching dictionary")
	return nil
}

// Remove stops reloading solverName. The directory stays watched.
func (w *Watcher) Remove(solverName string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, names := range w.targets {
		delete(names, solverName)
		if len(names) == 0 {
			delete(w.targets, path)
		}
	}
}

// Solvers returns the solvers registered for dictPath.
func (w *Watcher) Solvers(dictPath string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.solversLocked(normalize(dictPath))
}

func (w *Watcher) solversLocked(path string) []string {
	names := make([]string, 0, len(w.targets[path]))
	for name := range w.targets[path] {
		names = append(names, name)
	}
	return names
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(event); path != "" {
				w.schedule(path)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// handleEvent returns the watched dictionary path an event refers to, or "" when the
// event does not call for a reload.
func (w *Watcher) handleEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	path := normalize(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.targets[path]) == 0 {
		return ""
	}
	return path
}

// schedule reloads path's solvers once no event for it has arrived for the debounce period.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		names := w.solversLocked(path)
		w.mu.Unlock()

		for _, name := range names {
			if err := w.reloader.ReloadDictionary(name); err != nil {
				w.logger.Warn().Err(err).Str("solver", name).Msg("Dictionary reload after change failed")
				continue
			}
			w.logger.Info().Str("solver", name).Str("path", path).Msg("Dictionary reloaded after change")
		}
	})
}

// Close stops the watcher and cancels pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	return w.fs.Close()
}
