package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"
)

// _watchDelay is how long the watcher waits for more changes
// before rebuilding.
// Editors often write a file in several steps.
const _watchDelay = 100 * time.Millisecond

// Watcher rebuilds the site when its inputs change.
type Watcher struct {
	Log *log.Logger

	// Build regenerates the site,
	// and reports the files it was generated from.
	Build func() (files []string, err error)

	// Delay before rebuilding after a change.
	// Defaults to 100ms.
	Delay time.Duration

	watchingDirs, watchingFiles map[string]struct{}

	watcher *fsnotify.Watcher
}

// Watch watches the given files until ctx is cancelled,
// calling Build whenever one of them changes.
//
// Build errors are logged and do not stop the watcher.
func (w *Watcher) Watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	w.watcher = watcher
	w.watchingDirs = make(map[string]struct{})
	w.watchingFiles = make(map[string]struct{})
	if err := w.watchFiles(files); err != nil {
		return errtrace.Wrap(err)
	}

	delay := w.Delay
	if delay == 0 {
		delay = _watchDelay
	}

	// pending is non-nil while a rebuild is scheduled.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)
			if _, ok := w.watchingFiles[fname]; !ok {
				continue
			}

			w.Log.Printf("%v changed", event.Name)
			if pending == nil {
				pending = time.After(delay)
			}

		case <-pending:
			pending = nil
			w.rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) rebuild() {
	files, err := w.Build()
	if err != nil {
		w.Log.Printf("codetabs: %v", err)
		return
	}

	// New files may have matched a glob.
	if err := w.watchFiles(files); err != nil {
		w.Log.Printf("watch: %v", err)
	}
}

func (w *Watcher) watchFiles(files []string) error {
	for _, f := range files {
		if err := w.watchFile(f); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func (w *Watcher) watchFile(path string) error {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return errtrace.Wrap(err)
	}
	w.watchingFiles[fullPath] = struct{}{}

	// Watch the parent directory so that files replaced
	// by an editor are still seen.
	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return errtrace.Wrap(err)
	}
	w.watchingDirs[dir] = struct{}{}
	return nil
}
