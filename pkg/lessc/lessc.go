package lessc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/stoewer/go-strcase"

	"github.com/skiff-sh/fpless/pkg/except"
	"github.com/skiff-sh/fpless/pkg/execcmd"
	"github.com/skiff-sh/fpless/pkg/prefs"
)

// DefaultBinary name of the compiler looked up on $PATH.
const DefaultBinary = "lessc"

// CLI the lessc compiler.
type CLI interface {
	Path() string
	Version(ctx context.Context) (*Version, error)
	Compile(ctx context.Context, args CompileArgs) (*Output, error)
}

type CompileArgs struct {
	// Input absolute path of the .less entry file.
	Input string
	Less  prefs.Less
	// SourceMap ask the compiler to produce a sourcemap alongside the CSS.
	SourceMap bool
}

type Output struct {
	CSS []byte
	// Map raw sourcemap JSON. Nil unless CompileArgs.SourceMap was set.
	Map []byte
}

type Version struct {
	Major int
	Minor int
	Patch int
}

func (v *Version) String() string {
	return strings.Join([]string{strconv.Itoa(v.Major), strconv.Itoa(v.Minor), strconv.Itoa(v.Patch)}, ".")
}

var lesscVersionRegex = regexp.MustCompile(`lessc\s+v?([0-9]+)\.([0-9]+)\.([0-9]+)`)

// New locates the compiler. bin may be a name on $PATH or a path, empty means DefaultBinary.
func New(bin string) (CLI, error) {
	if bin == "" {
		bin = DefaultBinary
	}

	cmd := exec.CommandContext(context.Background(), bin)
	if cmd.Err != nil {
		if errors.Is(cmd.Err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s is not installed, try `npm install -g less`", except.ErrNotFound, bin)
		}
		return nil, cmd.Err
	}

	return &lesscCLI{path: cmd.Path}, nil
}

type lesscCLI struct {
	path string
}

func (l *lesscCLI) Path() string {
	return l.path
}

func (l *lesscCLI) Version(ctx context.Context) (*Version, error) {
	cmd, err := execcmd.NewCmd(ctx, l.path, "--version")
	if err != nil {
		return nil, err
	}
	defer cmd.Close()

	err = execcmd.Run(cmd)
	if err != nil {
		return nil, cmd.Err(err)
	}
	stdout := cmd.Buffers.Stdout.String()

	matches := lesscVersionRegex.FindStringSubmatch(stdout)
	if len(matches) != 4 {
		return nil, fmt.Errorf("%w: version: %s", except.ErrInvalid, stdout)
	}

	out := &Version{}
	for i, dst := range []*int{&out.Major, &out.Minor, &out.Patch} {
		*dst, err = strconv.Atoi(matches[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: version: %s", except.ErrInvalid, stdout)
		}
	}

	return out, nil
}

func (l *lesscCLI) Compile(ctx context.Context, args CompileArgs) (*Output, error) {
	if args.Input == "" {
		return nil, errors.New("input file required to compile")
	}

	var dst Dest
	if args.SourceMap {
		tmp, err := os.MkdirTemp("", "fpless-*")
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = os.RemoveAll(tmp)
		}()
		dst = TempDest(tmp, args.Input)
	}

	argv := BuildArgs(args, dst)
	cmd, err := execcmd.NewCmd(ctx, l.path, argv...)
	if err != nil {
		return nil, err
	}
	defer cmd.Close()
	cmd.Cmd.Dir = filepath.Dir(args.Input)

	slog.DebugContext(ctx, "Running lessc.", "path", args.Input, "args", argv)
	err = execcmd.Run(cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", except.ErrCompile, args.Input, cmd.Err(err))
	}

	out := &Output{}
	if dst.CSS == "" {
		out.CSS = bytes.Clone(cmd.Buffers.Stdout.Bytes())
	} else {
		out.CSS, err = os.ReadFile(dst.CSS)
		if err != nil {
			return nil, fmt.Errorf("failed to read output for %s: %w", args.Input, err)
		}
		out.Map, err = os.ReadFile(dst.Map)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read sourcemap for %s: %w", args.Input, err)
		}
	}

	slog.DebugContext(ctx, "Compiled.", "path", args.Input, "size", humanize.Bytes(uint64(len(out.CSS))))
	return out, nil
}

// Dest files lessc writes to. Zero means the CSS goes to stdout and no map is written.
type Dest struct {
	CSS string
	Map string
}

// TempDest the output files for input inside dir.
func TempDest(dir, input string) Dest {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	css := filepath.Join(dir, base+".css")
	return Dest{CSS: css, Map: css + ".map"}
}

// BuildArgs the lessc argv for args, without the program name. lessc resolves an explicit
// map file against the output file, so a map is only requested when dst names both.
func BuildArgs(args CompileArgs, dst Dest) []string {
	out := make([]string, 0, 8)
	if len(args.Less.Paths) > 0 {
		out = append(out, "--include-path="+strings.Join(args.Less.Paths, string(os.PathListSeparator)))
	}

	if args.Less.DumpLineNumbers.Enabled() {
		out = append(out, "--line-numbers="+string(args.Less.DumpLineNumbers))
	}

	withMap := args.SourceMap && dst.CSS != "" && dst.Map != ""
	if withMap {
		out = append(out, "--source-map="+dst.Map, "--source-map-include-source")
		if sm := args.Less.SourceMap; sm != nil {
			out = append(out, extraSourceMapFlags(sm.Extra)...)
		}
	}

	out = append(out, args.Input)
	if dst.CSS != "" {
		out = append(out, dst.CSS)
	}
	return out
}

// extraSourceMapFlags turns pass-through sourcemap options into lessc flags, e.g.
// {"sourceMapBasepath": "src"} becomes --source-map-basepath=src. Falsy values are dropped.
func extraSourceMapFlags(extra map[string]any) []string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		name := strcase.KebabCase(k)
		if !strings.HasPrefix(name, "source-map") {
			name = "source-map-" + name
		}

		switch v := extra[k].(type) {
		case nil:
		case bool:
			if v {
				out = append(out, "--"+name)
			}
		case string:
			if v != "" {
				out = append(out, "--"+name+"="+v)
			}
		default:
			out = append(out, fmt.Sprintf("--%s=%v", name, v))
		}
	}
	return out
}
