// Package watch recomputes team coverage whenever an export file changes.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"team-planner/coverage"
	"team-planner/game"
)

// DefaultDebounce is how long a file must stay quiet before it is re-read.
const DefaultDebounce = 100 * time.Millisecond

// Update is emitted after every successful re-read of the watched file.
type Update struct {
	File     string
	Members  []game.TeamMember
	Coverage coverage.Result
}

// Watcher monitors a single team-export file using fsnotify. The parent
// directory is watched so editors that replace the file are still seen.
type Watcher struct {
	File     string
	Debounce time.Duration
	Options  []coverage.Option
	Logger   *log.Logger

	Updates <-chan Update // Read-only external channel
	Errors  <-chan error

	updates chan Update
	errs    chan error
	quit    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for file. Nothing happens until Start.
func NewWatcher(file string, opts ...coverage.Option) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	updates := make(chan Update, 4)
	errs := make(chan error, 4)
	return &Watcher{
		File:     abs,
		Debounce: DefaultDebounce,
		Options:  opts,
		Updates:  updates,
		Errors:   errs,
		updates:  updates,
		errs:     errs,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start emits the current state of the file and then follows its changes.
func (w *Watcher) Start() error {
	if w.Logger == nil {
		w.Logger = log.Default()
	}
	if w.Debounce <= 0 {
		w.Debounce = DefaultDebounce
	}
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.File), err)
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and both channels.
func (w *Watcher) Stop() {
	close(w.quit)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.updates)
	close(w.errs)
}

func (w *Watcher) loop() {
	defer close(w.done)

	w.reload()

	var pending time.Time
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.quit:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.Debounce {
				pending = time.Time{}
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Logger.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.File)
	if err != nil {
		w.sendErr(fmt.Errorf("watch: read %s: %w", w.File, err))
		return
	}
	r, err := game.Deserialize(data)
	if err != nil {
		w.sendErr(fmt.Errorf("watch: %s: %w", w.File, err))
		return
	}

	u := Update{
		File:     w.File,
		Members:  r.Members(),
		Coverage: coverage.Aggregate(r, w.Options...),
	}
	select {
	case w.updates <- u:
	case <-w.quit:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	case <-w.quit:
	}
}
