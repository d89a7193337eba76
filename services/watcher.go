package services

import (
	"bulkimage/types"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a folder must be quiet before it is rescanned
const DefaultDebounce = 500 * time.Millisecond

// ReportPublisher receives the reports produced by a FolderWatcher
type ReportPublisher interface {
	PublishReport(folder string, report *types.ScanReport)
	PublishError(folder string, message string)
}

// FolderWatcher rescans folders whenever their contents change
type FolderWatcher struct {
	scanner   FolderScanner
	publisher ReportPublisher
	watcher   *fsnotify.Watcher
	debounce  time.Duration

	mu      sync.Mutex
	folders map[string]bool
	timers  map[string]*time.Timer
	stopped bool
}

// FolderKey returns the canonical form of a folder path used as a watch and topic key
func FolderKey(folderPath string) (string, error) {
	abs, err := filepath.Abs(folderPath)
	if err != nil {
		return "", fmt.Errorf("resolve folder path: %w", err)
	}
	return filepath.Clean(abs), nil
}

// NewFolderWatcher creates a new folder watcher
func NewFolderWatcher(scanner FolderScanner, publisher ReportPublisher, debounce time.Duration) (*FolderWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FolderWatcher{
		scanner:   scanner,
		publisher: publisher,
		watcher:   fsWatcher,
		debounce:  debounce,
		folders:   make(map[string]bool),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Start begins processing file system events
func (w *FolderWatcher) Start() {
	go w.processEvents()
}

// Watch adds a folder to the watch list. Watching a folder twice is a no-op.
func (w *FolderWatcher) Watch(folderPath string) (string, error) {
	key, err := FolderKey(folderPath)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return "", fmt.Errorf("watcher stopped")
	}
	if w.folders[key] {
		return key, nil
	}

	if err := w.watcher.Add(key); err != nil {
		return "", fmt.Errorf("failed to watch folder %s: %w", key, err)
	}
	w.folders[key] = true
	log.Printf("Watching folder: %s", key)

	return key, nil
}

// IsWatched reports whether a folder is on the watch list
func (w *FolderWatcher) IsWatched(folderPath string) bool {
	key, err := FolderKey(folderPath)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.folders[key]
}

// processEvents turns fsnotify events into debounced rescans
func (w *FolderWatcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if folder, ok := w.folderFor(event); ok {
				w.schedule(folder)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// folderFor maps an event onto the watched folder it affects
func (w *FolderWatcher) folderFor(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}

	name := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	// the watched folder itself was removed or renamed
	if w.folders[name] {
		return name, true
	}

	folder := filepath.Dir(name)
	if !w.folders[folder] {
		return "", false
	}
	if !w.scanner.IsCandidate(filepath.Base(name)) {
		return "", false
	}
	return folder, true
}

// schedule (re)starts the debounce timer for a folder
func (w *FolderWatcher) schedule(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if timer, exists := w.timers[folder]; exists {
		timer.Stop()
	}
	w.timers[folder] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, folder)
		w.mu.Unlock()

		w.rescan(folder)
	})
}

// rescan runs a fresh scan of folder and publishes the outcome
func (w *FolderWatcher) rescan(folder string) {
	report, err := w.scanner.Scan(folder)
	if err != nil {
		log.Printf("Error rescanning folder %s: %v", folder, err)
		if errors.Is(err, ErrNotFound) {
			w.mu.Lock()
			delete(w.folders, folder)
			w.mu.Unlock()
		}
		w.publisher.PublishError(folder, err.Error())
		return
	}

	w.publisher.PublishReport(folder, report)
}

// Stop stops the watcher and cancels pending rescans
func (w *FolderWatcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	for folder, timer := range w.timers {
		timer.Stop()
		delete(w.timers, folder)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
