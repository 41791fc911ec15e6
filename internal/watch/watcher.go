// Package watch re-runs generation whenever a declaration file changes.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"record-composer/internal/errors"
	"record-composer/internal/logging"
)

// FileWatcher monitors declaration files and triggers a callback when any
// of them change. Bursts of events are debounced so one save triggers one
// regeneration.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	files     map[string]struct{}
	onChange  func([]string) error
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher over the given declaration files.
func NewFileWatcher(files []string, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: newDebouncer(200 * time.Millisecond),
		files:     make(map[string]struct{}, len(files)),
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "resolve %s", f)
		}

		fw.files[abs] = struct{}{}
	}

	fw.debouncer.callback = func(changed []string) {
		if err := fw.onChange(changed); err != nil {
			logging.Errorw("regeneration failed", "error", err)
		}
	}

	return fw, nil
}

// Start begins watching. Directories are watched rather than the files
// themselves so editors that replace files on save keep triggering events.
func (fw *FileWatcher) Start() error {
	dirs := map[string]struct{}{}
	for f := range fw.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watch directory %s", dir)
		}

		logging.Infow("watching directory", "dir", dir)
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.stop()

	return fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			if _, tracked := fw.files[abs]; !tracked {
				continue
			}

			logging.Debugw("declaration file changed", "file", abs)
			fw.debouncer.add(abs)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

			logging.Warnw("watch error", "error", err)

		case <-fw.stopChan:
			return
		}
	}
}

// debouncer collects changed paths and fires its callback once the burst
// has been quiet for the configured duration.
type debouncer struct {
	duration time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	callback func([]string)
}

func newDebouncer(duration time.Duration) *debouncer {
	return &debouncer{
		duration: duration,
		pending:  make(map[string]struct{}),
	}
}

func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()

	changed := make([]string, 0, len(d.pending))
	for p := range d.pending {
		changed = append(changed, p)
	}

	d.pending = make(map[string]struct{})
	cb := d.callback
	d.mu.Unlock()

	if cb != nil && len(changed) > 0 {
		cb(changed)
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
