package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skiff-sh/fpless/pkg/fileutil"
)

// DefaultDebounce how long the watcher waits for a burst of events to settle. Editors tend
// to write, rename and chmod in quick succession on save.
const DefaultDebounce = 50 * time.Millisecond

// Func is called with the last changed path once events settle. Calls never overlap.
type Func func(ctx context.Context, changed string)

type Opts struct {
	Debounce time.Duration
	// Accept filters the paths that trigger a run. Nil accepts everything.
	Accept func(path string) bool
}

// Watcher watches a directory tree until closed.
type Watcher struct {
	Dir string

	fsw     *fsnotify.Watcher
	fn      Func
	opts    Opts
	pending chan string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
	err     error
}

// Watch starts watching dir and everything beneath it. Changes made while fn is running
// are coalesced into a single follow-up call.
func Watch(ctx context.Context, dir string, fn Func, opts Opts) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		Dir:     dir,
		fsw:     fsw,
		fn:      fn,
		opts:    opts,
		pending: make(chan string, 1),
	}

	err = w.addTree(dir)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(2)
	go w.watch(ctx)
	go w.work(ctx)

	slog.DebugContext(ctx, "Watching.", "path", dir)
	return w, nil
}

// Close stops the watcher and waits for an in-flight run to return. Safe to call more than once.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		w.cancel()
		w.err = w.fsw.Close()
		w.wg.Wait()
	})
	return w.err
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) watch(ctx context.Context) {
	defer w.wg.Done()
	var t *time.Timer
	defer func() {
		if t != nil {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}

			if ev.Has(fsnotify.Create) && fileutil.IsDir(ev.Name) {
				err := w.addTree(ev.Name)
				if err != nil {
					slog.WarnContext(ctx, "Failed to watch new directory.", "path", ev.Name, "err", err.Error())
				}
				continue
			}

			if w.opts.Accept != nil && !w.opts.Accept(ev.Name) {
				continue
			}

			if t != nil {
				t.Stop()
			}
			name := ev.Name
			t = time.AfterFunc(w.opts.Debounce, func() {
				w.trigger(name)
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were dropped, assume something changed.
				w.trigger(w.Dir)
			}
			slog.ErrorContext(ctx, "Error watching.", "path", w.Dir, "err", err.Error())
		}
	}
}

// trigger queues a run. If one is already queued the new change rides along with it.
func (w *Watcher) trigger(name string) {
	select {
	case w.pending <- name:
	default:
	}
}

func (w *Watcher) work(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-w.pending:
			w.fn(ctx, name)
		}
	}
}
