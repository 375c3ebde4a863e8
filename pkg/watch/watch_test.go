package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type WatchTestSuite struct {
	suite.Suite
}

type recorder struct {
	mu      sync.Mutex
	changed []string
}

func (r *recorder) record(_ context.Context, changed string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, changed)
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.changed...)
}

func (w *WatchTestSuite) TestWatch() {
	type test struct {
		Given    func(dir string) error
		Accept   func(string) bool
		Expected string
	}

	tests := map[string]test{
		"new file": {
			Given: func(dir string) error {
				return os.WriteFile(filepath.Join(dir, "watch-fixture.less"), []byte("a {}"), 0o644)
			},
			Expected: "watch-fixture.less",
		},
		"file in new subdirectory": {
			Given: func(dir string) error {
				sub := filepath.Join(dir, "partials")
				err := os.Mkdir(sub, 0o755)
				if err != nil {
					return err
				}
				// Give the watcher a moment to pick up the new directory.
				time.Sleep(100 * time.Millisecond)
				return os.WriteFile(filepath.Join(sub, "_mixins.less"), []byte(".m {}"), 0o644)
			},
			Expected: "_mixins.less",
		},
		"filtered": {
			Given: func(dir string) error {
				err := os.WriteFile(filepath.Join(dir, "ignored.swp"), []byte("x"), 0o644)
				if err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, "kept.less"), []byte("x"), 0o644)
			},
			Accept: func(p string) bool {
				return strings.HasSuffix(p, ".less")
			},
			Expected: "kept.less",
		},
	}

	for desc, v := range tests {
		w.Run(desc, func() {
			dir := w.T().TempDir()
			rec := &recorder{}

			watcher, err := Watch(w.T().Context(), dir, rec.record, Opts{Accept: v.Accept})
			if !w.NoError(err) {
				return
			}
			defer func() {
				_ = watcher.Close()
			}()

			w.Require().NoError(v.Given(dir))

			w.Eventually(func() bool {
				calls := rec.calls()
				return len(calls) > 0 && filepath.Base(calls[len(calls)-1]) == v.Expected
			}, 2*time.Second, 20*time.Millisecond)

			for _, c := range rec.calls() {
				w.False(strings.HasSuffix(c, ".swp"))
			}
		})
	}
}

func (w *WatchTestSuite) TestDebounce() {
	dir := w.T().TempDir()
	rec := &recorder{}

	watcher, err := Watch(w.T().Context(), dir, rec.record, Opts{Debounce: 200 * time.Millisecond})
	w.Require().NoError(err)
	defer func() {
		_ = watcher.Close()
	}()

	for i := range 5 {
		w.Require().NoError(os.WriteFile(filepath.Join(dir, "style.less"), []byte(strings.Repeat("a", i+1)), 0o644))
	}

	w.Eventually(func() bool {
		return len(rec.calls()) == 1
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	w.Len(rec.calls(), 1)
}

func (w *WatchTestSuite) TestCloseIdempotent() {
	watcher, err := Watch(w.T().Context(), w.T().TempDir(), func(context.Context, string) {}, Opts{})
	w.Require().NoError(err)

	w.NoError(watcher.Close())
	w.NoError(watcher.Close())
}

func (w *WatchTestSuite) TestMissingDir() {
	_, err := Watch(w.T().Context(), filepath.Join(w.T().TempDir(), "nope"), func(context.Context, string) {}, Opts{})
	w.Error(err)
}

func TestWatchTestSuite(t *testing.T) {
	suite.Run(t, new(WatchTestSuite))
}
