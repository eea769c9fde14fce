// Package watcher provides a debounced recursive file watcher. Change events
// for matching files are accumulated during a quiet period and delivered to
// the callback in one batch, so an editor save burst triggers one re-render
// instead of many.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches directory trees for changes to files accepted by a match
// predicate.
type Watcher struct {
	watcher      *fsnotify.Watcher
	dirs         []string
	match        func(fileName string) bool
	debounceTime time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	callback func(files []string)

	accumulated   map[string]bool
	accumulatedMu sync.Mutex

	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher over the given directories. match decides which file
// names are reported; everything else is ignored.
func New(dirs []string, match func(fileName string) bool) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:      fsWatcher,
		dirs:         dirs,
		match:        match,
		debounceTime: 500 * time.Millisecond,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addDirectoriesRecursively(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	return w, nil
}

// SetDebounce overrides the quiet period before a batch is delivered. Must be
// called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounceTime = d
}

// Start begins watching and delivering batches to callback. It returns
// immediately; delivery happens on an internal goroutine until Stop or until
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit. It is
// idempotent.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (w *Watcher) watch() {
	defer close(w.doneCh)

	flushCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// new directories join the watch set
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[event.Name] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(flushCh)

		case <-flushCh:
			w.flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// flush delivers the accumulated batch, if any.
func (w *Watcher) flush() {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	w.callback(files)
}

// resetDebounceTimer restarts the quiet-period timer, stopping and draining
// any previous one.
func (w *Watcher) resetDebounceTimer(flushCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		select {
		case flushCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent keeps write/create/remove events for matching files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	return w.match == nil || w.match(event.Name)
}

// addDirectoriesRecursively adds every directory under rootPath to the watch
// set. Errors below the root are logged and skipped so one unreadable
// subdirectory does not abort the whole watch.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
