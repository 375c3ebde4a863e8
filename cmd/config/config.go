package config

import (
	"path/filepath"

	"github.com/skiff-sh/config"

	"github.com/skiff-sh/fpless/pkg/dirs"
	"github.com/skiff-sh/fpless/pkg/lessc"
	"github.com/skiff-sh/fpless/pkg/system"
	"github.com/skiff-sh/fpless/pkg/vars"
)

type Config struct {
	Log config.Log `koanf:"log"  yaml:"log"  json:"log"`
	// The root of the project. If not set, uses cwd.
	Root string `koanf:"root" yaml:"root" json:"root"`
	// Preferences file relative to Root.
	Prefs string `koanf:"prefs" yaml:"prefs" json:"prefs"`
	// Name or path of the lessc binary.
	Lessc string `koanf:"lessc" yaml:"lessc" json:"lessc"`
	UI    UI     `koanf:"ui"    yaml:"ui"    json:"ui"`
}

type UI struct {
	Paths dirs.Paths `koanf:"paths" yaml:"paths" json:"paths"`
}

func NewConfig() (*Config, error) {
	k := config.InitKoanf(vars.AppName, Default())
	out := new(Config)
	err := k.Unmarshal("", out)
	if err != nil {
		return nil, err
	}

	wd, err := system.Getwd()
	if err != nil {
		return nil, err
	}

	if out.Root == "" {
		out.Root = wd
	} else if !filepath.IsAbs(out.Root) {
		out.Root = filepath.Join(wd, out.Root)
	}

	return out, nil
}

func Default() *Config {
	return &Config{
		Log: config.Log{
			Level:   "info",
			Outputs: "stderr",
		},
		Prefs: vars.PrefsFile,
		Lessc: lessc.DefaultBinary,
		UI: UI{
			Paths: dirs.DefaultPaths(),
		},
	}
}
