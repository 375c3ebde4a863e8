package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/skiff-sh/fpless/pkg/fileutil"
)

// Load reads the preferences at fp. A missing file is not an error, the caller just gets
// empty preferences that Resolve will default.
func Load(fp string) (*Preferences, error) {
	out := new(Preferences)
	if fp == "" || !fileutil.Exists(fp) {
		slog.Debug("No preferences file found, using defaults.", "path", fp)
		return out, nil
	}

	k := koanf.New(".")
	err := k.Load(file.Provider(fp), yaml.Parser())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read preferences %s: %w", fp, err)
	}

	err = k.Unmarshal("", out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode preferences %s: %w", fp, err)
	}

	// A bare "sourceMap:" key decodes to nothing. It still means a map was asked for.
	if out.Less.SourceMap == nil && k.Exists("less.sourceMap") {
		out.Less.SourceMap = new(SourceMap)
	}

	slog.Debug("Loaded preferences.", "path", fp)
	return out, nil
}
