// Package playlist watches the site's screenshot directory so resolved
// carousels can be refreshed when screenshots are added or removed.
package playlist

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"showcase/internal/media"
)

// Change describes one relevant filesystem event.
type Change struct {
	Path  string   // file the event was for
	Op    string   // create, remove or rename
	Files []string // sorted media files after the event
}

// OnChangeFunc is a callback invoked when the set of media files changes.
type OnChangeFunc func(Change)

// Watcher monitors a directory and maintains a sorted list of the media
// files (screenshots and local videos) in it.
type Watcher struct {
	mu       sync.RWMutex
	dir      string
	files    []string
	watcher  *fsnotify.Watcher
	onChange OnChangeFunc
	log      *zap.Logger
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher creates a Watcher for dir and performs the initial scan.
func NewWatcher(dir string, onChange OnChangeFunc, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		dir:      dir,
		watcher:  fw,
		onChange: onChange,
		log:      logger.Named("watcher"),
		stopCh:   make(chan struct{}),
	}
	w.scan()
	return w, nil
}

// scan reads the directory and rebuilds the sorted file list.
func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.Warn("scan failed", zap.String("dir", w.dir), zap.Error(err))
		return
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if media.IsSupported(entry.Name()) {
			files = append(files, filepath.Join(w.dir, entry.Name()))
		}
	}
	sort.Strings(files)

	w.mu.Lock()
	w.files = files
	w.mu.Unlock()

	w.log.Debug("scanned", zap.String("dir", w.dir), zap.Int("files", len(files)))
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Files returns the current sorted list of media file paths.
func (w *Watcher) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	dst := make([]string, len(w.files))
	copy(dst, w.files)
	return dst
}

// Start watches the directory until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("monitoring", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return nil

		case <-w.stopCh:
			w.log.Info("stopped", zap.String("dir", w.dir))
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantEvent(event) {
				continue
			}
			w.log.Debug("event", zap.Stringer("op", event.Op), zap.String("path", event.Name))
			w.scan()
			if w.onChange != nil {
				w.onChange(Change{Path: event.Name, Op: opName(event.Op), Files: w.Files()})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Stop halts the watch loop and releases the fsnotify resources. It is
// safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

// isRelevantEvent filters for create, remove and rename events on media
// files; writes to an existing screenshot do not change whether it exists.
func isRelevantEvent(e fsnotify.Event) bool {
	if e.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return media.IsSupported(e.Name)
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	}
	return op.String()
}
