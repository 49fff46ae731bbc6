package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a workspace file change.
type ChangeEvent struct {
	Path       string
	ChangeType string // "create", "write", "remove", "rename"
}

// WorkspaceWatcher watches the .storycast directory for changes to the
// backlog, sprint, and config files.
type WorkspaceWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(ChangeEvent)
}

// NewWorkspaceWatcher creates a new workspace watcher.
func NewWorkspaceWatcher(debounce time.Duration, onChange func(ChangeEvent)) (*WorkspaceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &WorkspaceWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Watch adds the workspace data directory to the watcher.
func (w *WorkspaceWatcher) Watch(dir string) error {
	if err := w.watcher.Add(filepath.Clean(dir)); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *WorkspaceWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	deliver := w.onChange
	if deliver == nil {
		deliver = func(ChangeEvent) {}
	}
	debouncer := NewChangeDebouncer(w.debounce, deliver)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" {
				continue
			}

			debouncer.Observe(ChangeEvent{Path: event.Name, ChangeType: changeType})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
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
