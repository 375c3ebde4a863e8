// Package pipeline runs a full LESS build: resolve preferences, pick how sourcemaps are
// handled, compile every entry file and write the results to the build directory.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/skiff-sh/fpless/pkg/dirs"
	"github.com/skiff-sh/fpless/pkg/except"
	"github.com/skiff-sh/fpless/pkg/filesystem"
	"github.com/skiff-sh/fpless/pkg/fileutil"
	"github.com/skiff-sh/fpless/pkg/interact"
	"github.com/skiff-sh/fpless/pkg/lessc"
	"github.com/skiff-sh/fpless/pkg/prefs"
	"github.com/skiff-sh/fpless/pkg/sourcemap"
)

// EntryGlob matches the entry files within the less dir. Partials in subdirectories are
// only reached through @import.
const EntryGlob = "*.less"

// Env everything a compile needs besides the preferences.
type Env struct {
	Compiler lessc.CLI
	Dirs     *dirs.Dirs
}

func NewEnv(compiler lessc.CLI, d *dirs.Dirs) *Env {
	return &Env{
		Compiler: compiler,
		Dirs:     d,
	}
}

// Result what a compile run wrote. Paths are relative to the build dir.
type Result struct {
	Strategy string
	Written  []string
}

// Stylesheets the CSS files in Written, without sourcemaps.
func (r *Result) Stylesheets() []string {
	out := make([]string, 0, len(r.Written))
	for _, v := range r.Written {
		if path.Ext(v) == ".css" {
			out = append(out, v)
		}
	}
	return out
}

// Compile builds every entry file with p. p is resolved in place, so the caller sees the
// defaults afterward.
func Compile(ctx context.Context, env *Env, p *prefs.Preferences) (*Result, error) {
	prefs.Resolve(p, env.Dirs.CSSSrc)
	strategy := sourcemap.SelectStrategy(p, env.Dirs)

	if !fileutil.IsDir(env.Dirs.LessDir()) {
		return nil, fmt.Errorf("%w: less dir %s", except.ErrNotFound, env.Dirs.LessDir())
	}

	src := filesystem.New(env.Dirs.LessDir())
	entries, err := src.Glob(EntryGlob)
	if err != nil {
		return nil, fmt.Errorf("bad entry pattern: %w", err)
	}
	slices.Sort(entries)

	slog.DebugContext(ctx, "Compiling LESS.",
		"dir", env.Dirs.LessDir(),
		"entries", len(entries),
		"strategy", strategy.Name(),
		"lineNumbers", string(p.Less.DumpLineNumbers),
	)

	bld := filesystem.New(env.Dirs.CSSBld)
	out := &Result{Strategy: strategy.Name()}
	for _, entry := range entries {
		written, err := compileEntry(ctx, env, p, strategy, src, bld, entry)
		if err != nil {
			return out, fmt.Errorf("%s: %w", entry, err)
		}
		out.Written = append(out.Written, written...)
	}

	return out, nil
}

// CompileNoComment same as Compile but with line comments off. p itself is not modified.
func CompileNoComment(ctx context.Context, env *Env, p *prefs.Preferences) (*Result, error) {
	return Compile(ctx, env, p.WithoutLineComments())
}

func compileEntry(
	ctx context.Context,
	env *Env,
	p *prefs.Preferences,
	strategy sourcemap.Strategy,
	src, bld filesystem.Filesystem,
	entry string,
) ([]string, error) {
	input, err := src.Abs(entry)
	if err != nil {
		return nil, err
	}

	compiled, err := env.Compiler.Compile(ctx, lessc.CompileArgs{
		Input:     input,
		Less:      p.Less,
		SourceMap: strategy.WantsMap(),
	})
	if err != nil {
		return nil, err
	}

	cssName := fileutil.ReplaceExt(path.Base(entry), "css")
	finished, err := strategy.Finish(cssName, compiled.CSS, compiled.Map)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, 2)
	err = bld.WriteFile(cssName, finished.CSS)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", cssName, err)
	}
	written = append(written, cssName)
	interact.Infof("Wrote %s (%s)", filepath.Join(bld.Root(), cssName), humanize.Bytes(uint64(len(finished.CSS))))

	if finished.Map != nil {
		err = bld.WriteFile(finished.MapName, finished.Map)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", finished.MapName, err)
		}
		written = append(written, finished.MapName)
		slog.DebugContext(ctx, "Wrote sourcemap.", "path", finished.MapName, "dest", sourcemap.DestBeside)
	} else if stale := cssName + ".map"; bld.Exists(stale) {
		// Left over from a run that wrote an external map.
		err = bld.Remove(stale)
		if err != nil {
			slog.DebugContext(ctx, "Failed to remove stale sourcemap.", "path", stale, "err", err.Error())
		}
	}

	return written, nil
}
