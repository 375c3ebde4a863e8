// Package prefs holds the user preferences that drive a LESS compile and the defaulting
// rules applied to them before each run.
package prefs

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/copystructure"
)

// LineNumbers controls the line comments lessc prints into the CSS. The zero value means
// the preference was never set.
type LineNumbers string

const (
	LineNumbersUnset    LineNumbers = ""
	LineNumbersComments LineNumbers = "comments"
	LineNumbersOff      LineNumbers = "false"
)

// Off reports whether line comments were explicitly disabled. Config loaders decode a YAML
// false into a string in a few ways so all of them are accepted.
func (l LineNumbers) Off() bool {
	switch strings.ToLower(strings.TrimSpace(string(l))) {
	case "false", "0", "off", "none", "no":
		return true
	}
	return false
}

// Enabled true when the value is set and not off.
func (l LineNumbers) Enabled() bool {
	return l != LineNumbersUnset && !l.Off()
}

type Preferences struct {
	Less Less `koanf:"less" yaml:"less" json:"less"`
}

type Less struct {
	// Paths searched for @import. Defaults to the less directory under the CSS source dir.
	Paths           []string    `koanf:"paths"           yaml:"paths"           json:"paths"`
	DumpLineNumbers LineNumbers `koanf:"dumpLineNumbers" yaml:"dumpLineNumbers" json:"dumpLineNumbers"`
	// SourceMap nil means no sourcemap is requested.
	SourceMap *SourceMap `koanf:"sourceMap" yaml:"sourceMap" json:"sourceMap"`
}

type SourceMap struct {
	FileInline bool   `koanf:"sourceMapFileInline" yaml:"sourceMapFileInline" json:"sourceMapFileInline"`
	Rootpath   string `koanf:"sourceMapRootpath"   yaml:"sourceMapRootpath"   json:"sourceMapRootpath"`
	// Extra any other option. Forwarded to the compiler untouched.
	Extra map[string]any `koanf:",remain" yaml:",inline" json:"-"`
}

// Resolve fills in the defaults for anything the caller left unset. Fields already set are
// never touched so calling it more than once is harmless.
func Resolve(p *Preferences, cssSrcDir string) *Preferences {
	// An explicit empty list means no include paths.
	if p.Less.Paths == nil {
		p.Less.Paths = []string{filepath.Join(cssSrcDir, "less")}
	}

	if p.Less.DumpLineNumbers == LineNumbersUnset {
		p.Less.DumpLineNumbers = LineNumbersComments
	}

	return p
}

// LineComments true if the compiled CSS will carry line comments.
func (p *Preferences) LineComments() bool {
	return p.Less.DumpLineNumbers.Enabled()
}

// LineCommentsOff true only when dumpLineNumbers was explicitly turned off. Unset is not off.
func (p *Preferences) LineCommentsOff() bool {
	return p.Less.DumpLineNumbers.Off()
}

// SourceMapRequested true when the sourcemap record is present at all.
func (p *Preferences) SourceMapRequested() bool {
	return p.Less.SourceMap != nil
}

// Clone deep copies p.
func (p *Preferences) Clone() *Preferences {
	out, err := copystructure.Copy(p)
	if err != nil {
		// Preferences only holds plain data, copystructure can't fail on it.
		panic(err)
	}
	//nolint:errcheck // Copy returns the same type it was given.
	return out.(*Preferences)
}

// WithoutLineComments returns a copy of p with line comments forced off. p is left alone.
func (p *Preferences) WithoutLineComments() *Preferences {
	out := p.Clone()
	out.Less.DumpLineNumbers = LineNumbersOff
	return out
}
