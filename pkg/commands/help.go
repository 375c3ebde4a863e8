package commands

import "github.com/skiff-sh/fpless/pkg/interact"

const HelpText = `
    fpless: LESS tasks

    Use:
        fpless [global options] less [<task>]

    Tasks:
        fpless less                     Build LESS files into frontend CSS.
        fpless less frontend-copy       Build LESS without line comments and copy the CSS to the backend.
        fpless less help                Print fpless tasks and descriptions.
        fpless less no-comment          Like 'fpless less' but without line comments.
        fpless less once                Same as 'fpless less'.
        fpless less watch               Watch for modifications to LESS files and build when modified.
        fpless less watch-no-comment    Like 'fpless less watch' but without line comments.
`

func PrintHelp() {
	interact.Print(HelpText)
}
