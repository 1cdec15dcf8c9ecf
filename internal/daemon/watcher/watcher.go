// Package watcher handles file system watching for the daemon.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/source"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventDefinitionsChanged EventType = iota // a language or theme file changed
	EventSettingsChanged
	EventActivityChanged
)

func (t EventType) String() string {
	switch t {
	case EventDefinitionsChanged:
		return "definitions"
	case EventSettingsChanged:
		return "settings"
	case EventActivityChanged:
		return "activity"
	default:
		return "unknown"
	}
}

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Config names the files and directories to watch.
type Config struct {
	// DefinitionsRoot holds languages/ and themes/. Empty when definitions
	// are bundled.
	DefinitionsRoot string
	SettingsFile    string
	ActivityFile    string
	Debounce        time.Duration
}

// Watcher watches for file system changes relevant to the daemon.
type Watcher struct {
	cfg        Config
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	logger     *log.Logger
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new file system watcher.
func New(cfg Config, logger *log.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	w := &Watcher{
		cfg:        cfg,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 100),
		done:       make(chan struct{}),
		logger:     logger,
		debounce:   make(map[string]*time.Timer),
	}

	return w, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher. Directories that do not exist yet are skipped
// with a warning.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs() {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Printf("[watcher] Warning: failed to watch %s: %v", dir, err)
			continue
		}
		w.logger.Printf("[watcher] Watching %s", dir)
	}

	// Start processing events
	go w.processEvents()

	return nil
}

func (w *Watcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if w.cfg.SettingsFile != "" {
		add(filepath.Dir(w.cfg.SettingsFile))
	}
	if w.cfg.ActivityFile != "" {
		add(filepath.Dir(w.cfg.ActivityFile))
	}
	if root := w.cfg.DefinitionsRoot; root != "" {
		add(filepath.Join(root, source.LanguagesDir))
		add(filepath.Join(root, source.ThemesDir))
	}
	return dirs
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("[watcher] error: %v", err)
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename matters: atomic writes (write tmp, rename to target) produce
	// Rename events on the target file. Remove matters for definitions.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	typ, ok := w.classify(event.Name)
	if !ok {
		return
	}

	// Definition files are reloaded as a set, so they share one timer.
	key := event.Name
	if typ == EventDefinitionsChanged {
		key = w.cfg.DefinitionsRoot
	}
	w.debounceEvent(key, func() {
		w.emit(Event{Type: typ, Path: event.Name})
	})
}

// classify maps a changed path to an event type.
func (w *Watcher) classify(path string) (EventType, bool) {
	path = filepath.Clean(path)
	dir, name := filepath.Dir(path), filepath.Base(path)

	if w.cfg.SettingsFile != "" && dir == filepath.Dir(w.cfg.SettingsFile) &&
		(name == config.SettingsFileName || name == config.SettingsTOMLFileName) {
		return EventSettingsChanged, true
	}
	if w.cfg.ActivityFile != "" && path == filepath.Clean(w.cfg.ActivityFile) {
		return EventActivityChanged, true
	}
	if root := w.cfg.DefinitionsRoot; root != "" && strings.EqualFold(filepath.Ext(name), ".yaml") {
		if dir == filepath.Join(root, source.LanguagesDir) || dir == filepath.Join(root, source.ThemesDir) {
			return EventDefinitionsChanged, true
		}
	}
	return 0, false
}

// debounceEvent debounces events for the same key.
func (w *Watcher) debounceEvent(key string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	// Cancel existing timer
	if timer, ok := w.debounce[key]; ok {
		timer.Stop()
	}

	w.debounce[key] = time.AfterFunc(w.cfg.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounce, key)
		w.debounceMu.Unlock()
		fn()
	})
}

func (w *Watcher) emit(e Event) {
	select {
	case w.eventsChan <- e:
	case <-w.done:
	}
}
