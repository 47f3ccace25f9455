package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// RunWatch replays the script now and again every time it changes, until ctx
// is done. onRun, when set, receives the result of every replay.
func RunWatch(ctx context.Context, opts Options, onRun func(error)) error {
	path, err := filepath.Abs(opts.ScriptPath)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so the directory is watched instead of the file.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	replay := func() {
		err := runOnce(opts)
		if err != nil {
			fmt.Fprintf(opts.err(), "Error: %v\n", err)
		}
		printSystemMessage(opts.err(), "Waiting for changes to '%s'...", opts.ScriptPath)
		if onRun != nil {
			onRun(err)
		}
	}
	replay()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(opts.err(), "Watcher error: %v\n", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			printSystemMessage(opts.err(), "Change detected in '%s'.", opts.ScriptPath)
			replay()
		}
	}
}
