package actions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Benny93/phuml-go/internal/parser"
)

// DefaultDebounce is the quiet period after the last change before the
// output is regenerated.
const DefaultDebounce = 2 * time.Second

// Watcher regenerates an output whenever the sources of a directory change.
type Watcher struct {
	source     Source
	traverser  parser.Traverser
	regenerate func(ctx context.Context) error
	onResult   func(changed int, err error)
	debounce   time.Duration

	matcher  gitignore.Matcher
	watcher  *fsnotify.Watcher
	excluded map[string]bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before regenerating.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// OnResult is called after every regeneration with the number of changed
// files and the regeneration error, if any.
func OnResult(fn func(changed int, err error)) WatcherOption {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// ExcludingFiles ignores changes to the given files, typically the generated
// outputs when they live inside the watched directory.
func ExcludingFiles(paths ...string) WatcherOption {
	return func(w *Watcher) {
		for _, path := range paths {
			if abs, err := filepath.Abs(path); err == nil {
				w.excluded[abs] = true
			}
		}
	}
}

// NewWatcher starts watching the source directories. Changes to files the
// traverser accepts, and not ignored by .gitignore, trigger regenerate.
func NewWatcher(source Source, t parser.Traverser, regenerate func(ctx context.Context) error, opts ...WatcherOption) (*Watcher, error) {
	root, err := filepath.Abs(source.Directory)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	source.Directory = root

	w := &Watcher{
		source:     source,
		traverser:  t,
		regenerate: regenerate,
		debounce:   DefaultDebounce,
		excluded:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	patterns, err := parser.LoadGitignore(root)
	if err != nil {
		return nil, fmt.Errorf("loading .gitignore: %w", err)
	}
	w.matcher = parser.NewIgnoreMatcher(patterns)

	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := w.addDirectories(); err != nil {
		_ = w.watcher.Close()
		return nil, fmt.Errorf("setting up watcher: %w", err)
	}
	return w, nil
}

func (w *Watcher) addDirectories() error {
	root := w.source.Directory
	if !w.source.Recursive {
		return w.watcher.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && parser.ShouldSkipDir(path, root, w.matcher) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run blocks until the context is cancelled, regenerating the output after
// every batch of changes.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	changed := make(map[string]bool)
	batchTimer := time.NewTimer(w.debounce)
	batchTimer.Stop() // Don't start yet

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && w.source.Recursive {
				w.watchNewDirectory(event.Name)
			}
			if !w.shouldWatchFile(event.Name) {
				continue
			}

			changed[event.Name] = true
			batchTimer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-batchTimer.C:
			if len(changed) == 0 {
				continue
			}
			err := w.regenerate(ctx)
			if errors.Is(err, context.Canceled) {
				return err
			}
			if w.onResult != nil {
				w.onResult(len(changed), err)
			}
			changed = make(map[string]bool)
		}
	}
}

// watchNewDirectory starts watching a directory created below the root.
func (w *Watcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if parser.ShouldSkipDir(path, w.source.Directory, w.matcher) {
		return
	}
	_ = w.watcher.Add(path)
}

// shouldWatchFile reports whether a change to path triggers a regeneration.
func (w *Watcher) shouldWatchFile(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil || w.excluded[abs] {
		return false
	}
	if !parser.Accepts(w.traverser, abs) {
		return false
	}
	return !parser.IsIgnored(abs, w.source.Directory, w.matcher)
}
