// SPDX-License-Identifier: MIT

// Package watch reloads a mesh object whenever its OBJ file changes on disk.
// The reload goes through the session, so every redraw subscriber (overlay,
// auto-export) reacts to it.
package watch

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors emit per save.
const DefaultDebounce = 200 * time.Millisecond

// Reloader re-reads path into the named session object. *ops.Operator
// implements it.
type Reloader interface {
	ReloadMesh(name, path string) error
}

// Option configures a Watcher.
type Option func(w *Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for reload results and watcher errors.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithOnReload registers a callback invoked after each reload attempt.
func WithOnReload(fn func(err error)) Option {
	return func(w *Watcher) { w.onReload = fn }
}

// Watcher follows one OBJ file.
type Watcher struct {
	path     string
	object   string
	reloader Reloader
	debounce time.Duration
	logger   *log.Logger
	onReload func(err error)

	readyOnce sync.Once
	ready     chan struct{}
}

// New returns a watcher that reloads path into object through r.
func New(path, object string, r Reloader, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		object:   object,
		reloader: r,
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard, "", 0),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Ready is closed once the file is being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is done. The parent directory is watched rather
// than the file so that editors replacing the file by rename are followed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.Printf("watching %s", w.path)

	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = true
			debounce.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("watcher error: %v", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			err := w.reloader.ReloadMesh(w.object, w.path)
			if err != nil {
				w.logger.Printf("reload %s: %v", w.path, err)
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}
