package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/skiff-sh/fpless/pkg/dirs"
	"github.com/skiff-sh/fpless/pkg/fileutil"
	"github.com/skiff-sh/fpless/pkg/lessc"
	"github.com/skiff-sh/fpless/pkg/pipeline"
	"github.com/skiff-sh/fpless/pkg/prefs"
	"github.com/skiff-sh/fpless/pkg/system"
	"github.com/skiff-sh/fpless/pkg/vars"
)

// Options defaults for the global flags, normally sourced from config.
type Options struct {
	Root      string
	PrefsFile string
	Lessc     string
	Paths     dirs.Paths
}

type RootCommand struct {
	Options Options
	CLI     *cli.Command
}

func NewCommand(opts Options) *RootCommand {
	cli.SubcommandHelpTemplate = `Name:
   {{template "helpNameTemplate" .}}

Usage:
   {{if .UsageText}}{{wrap .UsageText 3}}{{else}}{{.FullName}}{{if .VisibleCommands}} [command [command options]]{{end}}{{if .ArgsUsage}} {{.ArgsUsage}}{{else}}{{if .Arguments}} [arguments...]{{end}}{{end}}{{end}}{{if .Category}}

Category:
   {{.Category}}{{end}}{{if .Description}}

Description:
   {{template "descriptionTemplate" .}}{{end}}{{if .VisibleCommands}}

Commands:{{template "visibleCommandTemplate" .}}{{end}}{{if .VisibleFlagCategories}}

Options:{{template "visibleFlagCategoryTemplate" .}}{{else if .VisibleFlags}}

Options:{{template "visibleFlagTemplate" .}}{{end}}
`

	cli.HelpPrinterCustom = func(w io.Writer, templ string, data any, customFunc map[string]any) {
		if customFunc == nil {
			customFunc = map[string]any{}
		}

		customFunc["concat"] = func(sep string, args ...string) string {
			return strings.Join(args, sep)
		}
		cli.DefaultPrintHelpCustom(w, templ, data, customFunc)
	}

	r := &RootCommand{Options: opts}

	lessAction := func(noComment bool) cli.ActionFunc {
		return func(ctx context.Context, command *cli.Command) error {
			args, err := r.lessArgs(ctx, command)
			if err != nil {
				return err
			}
			_, err = NewLessAction(noComment).Act(ctx, args)
			return err
		}
	}

	watchAction := func(noComment bool) cli.ActionFunc {
		return func(ctx context.Context, command *cli.Command) error {
			args, err := r.lessArgs(ctx, command)
			if err != nil {
				return err
			}

			ctx, stop := system.InterruptContext(ctx)
			defer stop()

			watcher, err := NewWatchAction(noComment).Act(ctx, args)
			if err != nil {
				return err
			}

			<-ctx.Done()
			return watcher.Close()
		}
	}

	r.CLI = &cli.Command{
		Name:    vars.AppName,
		Version: vars.Version,
		Usage:   "Compile LESS stylesheets into CSS.",
		Flags: []cli.Flag{
			FlagRoot,
			FlagPrefs,
			FlagLessc,
		},
		Commands: []*cli.Command{
			{
				Name:   "less",
				Usage:  "Build LESS files into frontend CSS.",
				Action: lessAction(false),
				Commands: []*cli.Command{
					{
						Name:   "once",
						Usage:  "Same as 'less'.",
						Action: lessAction(false),
					},
					{
						Name:   "no-comment",
						Usage:  "Like 'less' but without line comments.",
						Action: lessAction(true),
					},
					{
						Name:   "watch",
						Usage:  "Watch for modifications to LESS files and build when modified.",
						Action: watchAction(false),
					},
					{
						Name:   "watch-no-comment",
						Usage:  "Like 'less watch' but without line comments.",
						Action: watchAction(true),
					},
					{
						Name:  "frontend-copy",
						Usage: "Build LESS without line comments and copy the CSS to the backend.",
						Action: func(ctx context.Context, command *cli.Command) error {
							args, err := r.lessArgs(ctx, command)
							if err != nil {
								return err
							}
							_, err = NewFrontendCopyAction().Act(ctx, args)
							return err
						},
					},
					{
						Name:  "help",
						Usage: "Print fpless tasks and descriptions.",
						Action: func(_ context.Context, _ *cli.Command) error {
							PrintHelp()
							return nil
						},
					},
				},
			},
		},
	}

	return r
}

func (r *RootCommand) Run(ctx context.Context, args []string) error {
	return r.CLI.Run(ctx, args)
}

// lessArgs builds the environment for a task from flags, falling back to Options.
func (r *RootCommand) lessArgs(ctx context.Context, command *cli.Command) (*LessArgs, error) {
	root := firstNonEmpty(command.String(FlagRoot.Name), r.Options.Root)
	if root == "" {
		var err error
		root, err = system.Getwd()
		if err != nil {
			return nil, err
		}
	}
	root = fileutil.MustAbs(root)

	compiler, err := lessc.New(firstNonEmpty(command.String(FlagLessc.Name), r.Options.Lessc))
	if err != nil {
		return nil, err
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		ver, err := compiler.Version(ctx)
		if err != nil {
			slog.DebugContext(ctx, "Failed to get lessc version.", "path", compiler.Path(), "err", err.Error())
		} else {
			slog.DebugContext(ctx, "Using lessc.", "path", compiler.Path(), "lessc", ver.String())
		}
	}

	prefsFile := firstNonEmpty(command.String(FlagPrefs.Name), r.Options.PrefsFile, vars.PrefsFile)
	p, err := prefs.Load(fileutil.AbsFrom(root, prefsFile))
	if err != nil {
		return nil, err
	}

	return &LessArgs{
		Env:   pipeline.NewEnv(compiler, dirs.New(root, r.Options.Paths)),
		Prefs: p,
	}, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
