package commands

import "github.com/urfave/cli/v3"

var FlagRoot = &cli.StringFlag{
	Name:     "root",
	Category: "fpless",
	Usage:    "The root of your project. UI paths are resolved relative to it. Defaults to the cwd.",
	Aliases:  []string{"r"},
}

var FlagPrefs = &cli.StringFlag{
	Name:     "prefs",
	Category: "fpless",
	Usage:    "Preferences file holding the `less` options. Relative to the project root.",
	Aliases:  []string{"p"},
}

var FlagLessc = &cli.StringFlag{
	Name:     "lessc",
	Category: "fpless",
	Usage:    "Name or path of the lessc binary.",
}
