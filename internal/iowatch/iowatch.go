// Package iowatch implements the lifecycle.Watcher interface with
// fsnotify. It regenerates the test files when the specification export,
// the entities document or the record plan changes.
package iowatch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/g3zod/CreateADIFTestFiles/pkg/config"
	"github.com/g3zod/CreateADIFTestFiles/pkg/lifecycle"
	"github.com/gnames/gn"
)

// DefaultDebounce is the quiet time after the last change before the
// files are generated again.
const DefaultDebounce = 300 * time.Millisecond

type watcher struct {
	cfg      *config.Config
	gen      lifecycle.Generator
	debounce time.Duration
	onRun    func([]lifecycle.Output, error)
}

// Option changes the watcher created by New.
type Option func(*watcher)

// OptDebounce sets the quiet time before a regeneration.
func OptDebounce(d time.Duration) Option {
	return func(w *watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OptOnRun sets a callback called after every generation.
func OptOnRun(fn func([]lifecycle.Output, error)) Option {
	return func(w *watcher) {
		w.onRun = fn
	}
}

// New creates a Watcher for the inputs named in cfg.
func New(
	cfg *config.Config,
	gen lifecycle.Generator,
	opts ...Option,
) lifecycle.Watcher {
	res := watcher{
		cfg:      cfg,
		gen:      gen,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// Watch generates the files once and then again after every change of
// an input. Generation errors are reported and do not stop watching.
func (w *watcher) Watch(ctx context.Context) error {
	files, err := w.inputs()
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return WatchError("", err)
	}
	defer fw.Close()

	// Directories are watched, editors often replace files by renaming.
	dirs := make(map[string]struct{})
	for f := range files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err = fw.Add(d); err != nil {
			return WatchError(d, err)
		}
	}

	w.run(ctx)
	gn.Info("Watching inputs for changes, press <em>Ctrl-C</em> to stop")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := files[name]; !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) {
				slog.Debug("Input changed", "file", name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.run(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watch error", "error", err)
		}
	}
}

func (w *watcher) run(ctx context.Context) {
	outs, err := w.gen.Generate(ctx)
	if err != nil {
		slog.Error("Generation failed", "error", err)
		gn.PrintErrorMessage(err)
	}
	if w.onRun != nil {
		w.onRun(outs, err)
	}
}

// inputs returns the absolute paths of the watched files.
func (w *watcher) inputs() (map[string]struct{}, error) {
	paths := []string{
		w.cfg.Generate.SpecPath,
		w.cfg.Generate.EntitiesPath,
		w.cfg.PlanPath(),
	}
	res := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, WatchError(p, err)
		}
		res[abs] = struct{}{}
	}
	return res, nil
}
