package shader

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-march/common"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor produces for a single save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a shader file. onChange runs on the watcher's own goroutine.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	checker  *Checker

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts watching the directory holding path and calls onChange after the file is written,
// created or renamed into place. The directory is watched rather than the file so editors that
// save by replacing the file keep triggering reloads.
//
// Parameters:
//   - path: the shader file to watch
//   - debounce: quiet period before onChange fires; values <= 0 use DefaultDebounce
//   - onChange: called once per burst of changes
//   - opts: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher, to be closed by the caller
//   - error: error if the watcher cannot be created
func Watch(path string, debounce time.Duration, onChange func(), opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shader path %q: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.wg.Add(1)
	go w.run()
	common.Logger().Info("shader: watching for changes", "path", abs, "precheck", w.checker != nil)
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			common.Logger().Warn("shader: watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	common.Logger().Debug("shader: change detected", "path", w.path)
	if w.checker != nil {
		w.checker.Check(w.path, w.onChange)
		return
	}
	if w.onChange != nil {
		w.onChange()
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending notifications are dropped.
//
// Returns:
//   - error: error from releasing the underlying watcher
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	err := w.watcher.Close()
	w.wg.Wait()
	if w.checker != nil {
		w.checker.Close()
	}
	return err
}
