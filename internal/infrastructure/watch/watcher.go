package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"lodestar/pkg/storage"
)

// ChangeEvent describes one settled change to a workspace snapshot file.
type ChangeEvent struct {
	Path string // absolute path of the changed file
	File string // base name, e.g. "projects.json"
	Op   string // "create", "write", "remove", "rename"
}

// SnapshotWatcher watches a workspace's .lodestar directory and reports
// changes to the snapshot files, debounced so editor save storms and partial
// writes settle into one event.
type SnapshotWatcher struct {
	watcher  *fsnotify.Watcher
	filter   *PatternFilter
	debounce time.Duration
	onChange func(ChangeEvent)
}

// NewSnapshotWatcher creates a watcher that invokes onChange once per settled
// change. A zero debounce falls back to 500ms; a nil filter falls back to
// DefaultSnapshotFilter.
func NewSnapshotWatcher(debounce time.Duration, filter *PatternFilter, onChange func(ChangeEvent)) (*SnapshotWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	if filter == nil {
		filter = DefaultSnapshotFilter()
	}
	return &SnapshotWatcher{
		watcher:  w,
		filter:   filter,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// WatchWorkspace adds the workspace's .lodestar directory to the watcher.
// Snapshots live flat in that directory, so no recursion is needed.
func (w *SnapshotWatcher) WatchWorkspace(root string) error {
	dir := filepath.Join(root, storage.LodestarDir)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *SnapshotWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debouncer := NewDebouncer(w.debounce, func(ev ChangeEvent) {
		if w.onChange != nil {
			w.onChange(ev)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			op := opName(event.Op)
			if op == "" {
				continue
			}
			if !w.filter.Matches(event.Name) {
				continue
			}
			debouncer.Trigger(ChangeEvent{
				Path: event.Name,
				File: filepath.Base(event.Name),
				Op:   op,
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
