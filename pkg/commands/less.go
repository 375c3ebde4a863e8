package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/skiff-sh/fpless/pkg/filesystem"
	"github.com/skiff-sh/fpless/pkg/frontendcopy"
	"github.com/skiff-sh/fpless/pkg/interact"
	"github.com/skiff-sh/fpless/pkg/pipeline"
	"github.com/skiff-sh/fpless/pkg/prefs"
	"github.com/skiff-sh/fpless/pkg/watch"
)

// LessArgs shared by every less task.
type LessArgs struct {
	Env   *pipeline.Env
	Prefs *prefs.Preferences
}

type LessAction struct {
	NoComment bool
}

func NewLessAction(noComment bool) *LessAction {
	return &LessAction{NoComment: noComment}
}

func (l *LessAction) Act(ctx context.Context, args *LessArgs) (*pipeline.Result, error) {
	res, err := l.compile(ctx, args)
	if err != nil {
		return nil, err
	}

	interact.Successf("Built %d file(s) into %s", len(res.Stylesheets()), args.Env.Dirs.Rel(args.Env.Dirs.CSSBld))
	return res, nil
}

func (l *LessAction) compile(ctx context.Context, args *LessArgs) (*pipeline.Result, error) {
	if l.NoComment {
		return pipeline.CompileNoComment(ctx, args.Env, args.Prefs)
	}
	return pipeline.Compile(ctx, args.Env, args.Prefs)
}

type WatchAction struct {
	Less *LessAction
}

func NewWatchAction(noComment bool) *WatchAction {
	return &WatchAction{Less: NewLessAction(noComment)}
}

// Act starts watching the LESS sources. The returned watcher keeps compiling until closed. A
// failed compile is reported and the watcher carries on.
func (w *WatchAction) Act(ctx context.Context, args *LessArgs) (*watch.Watcher, error) {
	dir := args.Env.Dirs.LessDir()
	watcher, err := watch.Watch(ctx, dir, func(ctx context.Context, changed string) {
		interact.Mutedf("%s changed", args.Env.Dirs.Rel(changed))
		_, err := w.Less.Act(ctx, args)
		if err != nil {
			slog.ErrorContext(ctx, "Compile failed.", "path", changed, "err", err.Error())
			interact.Error(err.Error())
		}
	}, watch.Opts{Accept: IsLess})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	interact.Infof("Watching %s", args.Env.Dirs.Rel(dir))
	return watcher, nil
}

// IsLess true for LESS sources. Other files in the less dir never trigger a build.
func IsLess(p string) bool {
	return filepath.Ext(p) == ".less"
}

type FrontendCopyAction struct{}

func NewFrontendCopyAction() *FrontendCopyAction {
	return &FrontendCopyAction{}
}

// Act builds without line comments and copies the result to the backend.
func (f *FrontendCopyAction) Act(ctx context.Context, args *LessArgs) ([]string, error) {
	_, err := NewLessAction(true).Act(ctx, args)
	if err != nil {
		return nil, err
	}

	d := args.Env.Dirs
	copied, err := frontendcopy.Copy(ctx, filesystem.New(d.CSSBld), filesystem.New(d.BackendBld()))
	if err != nil {
		return nil, fmt.Errorf("failed to copy to %s: %w", filepath.Clean(d.BackendBld()), err)
	}
	return copied, nil
}
