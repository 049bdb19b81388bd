// Package watcher reports debounced changes to model files on disk.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events one save produces.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher watches files for changes and calls onChange once per burst.
// Parent directories are watched so editors that save by rename are seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]bool
	dirs     map[string]int
	timers   map[string]*time.Timer
	debounce time.Duration
	onChange func(path string)
	logger   *log.Logger
	closed   bool
}

// NewFileWatcher creates a watcher. onChange runs on a timer goroutine.
func NewFileWatcher(debounce time.Duration, onChange func(path string), logger *log.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	return &FileWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		timers:   make(map[string]*time.Timer),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Watch adds files to the watch set.
func (fw *FileWatcher) Watch(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if fw.files[absPath] {
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.files[absPath] = true
	}
	return nil
}

// Files returns the watched paths.
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	return out
}

// Start begins delivering events. It returns immediately.
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Printf("watcher error: %v", err)
			}
		}
	}()
}

func (fw *FileWatcher) handleFileChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed || !fw.files[path] {
		return
	}
	if timer, ok := fw.timers[path]; ok {
		timer.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		closed := fw.closed
		delete(fw.timers, path)
		fw.mu.Unlock()
		if !closed {
			fw.onChange(path)
		}
	})
}

// RemoveAll stops watching every file.
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return fmt.Errorf("failed to unwatch %s: %w", dir, err)
		}
	}
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.files = make(map[string]bool)
	fw.dirs = make(map[string]int)
	fw.timers = make(map[string]*time.Timer)
	return nil
}

// Close stops the watcher. Pending callbacks are dropped.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
